package cmd

import (
	"log"

	"github.com/go-openapi/swag"
	"github.com/spf13/cobra"

	"github.com/dnbln/upsilon/pkg/model"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <sha>",
	Short: "Show a commit",
	Long:  `Show the metadata of a commit: sha, message, author, committer, parents, readme.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := initContext()
		sess := openSession()
		defer sess.Close()
		client := sess.Client()

		commit, err := client.OpenCommit(ctx, args[0])
		if err != nil {
			log.Fatalln(err)
		}

		view := commitView{}
		if view.SHA, err = client.CommitSHA(ctx, commit); err != nil {
			log.Fatalln(err)
		}
		if view.Message, err = client.CommitMessage(ctx, commit); err != nil {
			log.Fatalln(err)
		}
		if view.Author, err = client.CommitAuthor(ctx, commit); err != nil {
			log.Fatalln(err)
		}
		if view.Committer, err = client.CommitCommitter(ctx, commit); err != nil {
			log.Fatalln(err)
		}

		parents, err := client.CommitParents(ctx, commit)
		if err != nil {
			log.Fatalln(err)
		}
		for _, p := range parents {
			sha, err := client.CommitSHA(ctx, p)
			if err != nil {
				log.Fatalln(err)
			}
			view.Parents = append(view.Parents, sha)
		}

		readme, err := client.CommitReadme(ctx, commit)
		if err != nil {
			log.Fatalln(err)
		}
		if readme != nil {
			view.Readme = swag.String(readme.Path)
		}

		if err := printResult(cmd, view); err != nil {
			log.Fatalln(err)
		}
	},
}

type commitView struct {
	SHA       string          `json:"sha" yaml:"sha"`
	Message   string          `json:"message" yaml:"message"`
	Author    model.Signature `json:"author" yaml:"author"`
	Committer model.Signature `json:"committer" yaml:"committer"`
	Parents   []string        `json:"parents,omitempty" yaml:"parents,omitempty"`
	Readme    *string         `json:"readme,omitempty" yaml:"readme,omitempty"`
}

func init() {
	rootCmd.AddCommand(showCmd)
	addFormatFlag(showCmd, "yaml", nil)
}
