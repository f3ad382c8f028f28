package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dnbln/upsilon/pkg/model"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <revspec>",
	Short: "Show the diff of a revision range",
	Long: `Parse a revision specification such as "v1.0..main" and render the
patch between its two bounds.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		sess := openSession()
		defer sess.Close()
		client := sess.Client()

		spec, err := client.OpenRevspec(ctx, args[0])
		if err != nil {
			log.Fatalln(err)
		}
		diff, err := client.RevspecDiff(ctx, spec)
		if err != nil {
			log.Fatalln(err)
		}
		if diff == nil {
			log.Fatalf("%q has no upper bound to diff against", args[0])
		}

		if err := printResult(cmd, *diff); err != nil {
			log.Fatalln(err)
		}
	},
}

func diffFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		diff := data.(model.Diff)
		for _, stat := range diff.Stats {
			fmt.Fprintf(w, "%s  %s %s\n", stat.Path,
				color.GreenString("+%d", stat.Additions),
				color.RedString("-%d", stat.Deletions))
		}
		fmt.Fprintln(w)
		_, err := io.WriteString(w, diff.Patch)
		return err
	}
}

func init() {
	rootCmd.AddCommand(diffCmd)
	addFormatFlag(diffCmd, "patch", map[string]Formatter{
		"patch": diffFormatter(),
	})
}
