package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dnbln/upsilon/pkg/model"
)

// contributorsCmd represents the contributors command
var contributorsCmd = &cobra.Command{
	Use:   "contributors <branch>",
	Short: "Count distinct commits per author on a branch",
	Long: `Walk the branch history and attribute each distinct commit to its
author email. Merge bases are counted once, not once per incoming
branch.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		sess := openSession()
		defer sess.Close()
		client := sess.Client()

		branch, err := client.OpenBranch(ctx, args[0])
		if err != nil {
			log.Fatalln(err)
		}
		contributors, err := client.BranchContributors(ctx, branch)
		if err != nil {
			log.Fatalln(err)
		}

		if err := printResult(cmd, contributors); err != nil {
			log.Fatalln(err)
		}
	},
}

func contributorsFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		contributors := data.(model.Contributors)
		for _, entry := range contributors.Sorted() {
			fmt.Fprintf(w, "%6d  %s\n", entry.Commits, color.GreenString(entry.Email))
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(contributorsCmd)
	addFormatFlag(contributorsCmd, "list", map[string]Formatter{
		"list": contributorsFormatter(),
	})
}
