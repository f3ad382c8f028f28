package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dnbln/upsilon/pkg/model"
)

var treeRecursive bool

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree <sha>",
	Short: "List the tree of a commit",
	Long: `List the entries of the commit tree. With --recursive, every entry
reachable from the root is listed pre-order with its full path.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		sess := openSession()
		defer sess.Close()
		client := sess.Client()

		commit, err := client.OpenCommit(ctx, args[0])
		if err != nil {
			log.Fatalln(err)
		}
		tree, err := client.CommitTree(ctx, commit)
		if err != nil {
			log.Fatalln(err)
		}

		var entries []model.TreeEntry
		if treeRecursive {
			entries, err = client.WholeTreeEntries(ctx, tree)
		} else {
			entries, err = client.TreeEntries(ctx, tree)
		}
		if err != nil {
			log.Fatalln(err)
		}

		if err := printResult(cmd, entries); err != nil {
			log.Fatalln(err)
		}
	},
}

func treeFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		entries := data.([]model.TreeEntry)
		for _, e := range entries {
			switch e.Kind {
			case model.EntryTree:
				fmt.Fprintln(w, color.BlueString(e.Name+"/"))
			case model.EntrySubmodule:
				fmt.Fprintln(w, color.CyanString(e.Name+"@"))
			default:
				fmt.Fprintf(w, "%s (%s)\n", e.Name, units.HumanSize(float64(e.Size)))
			}
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVarP(&treeRecursive, "recursive", "r", false, "list the whole tree")
	addFormatFlag(treeCmd, "list", map[string]Formatter{
		"list": treeFormatter(),
	})
}
