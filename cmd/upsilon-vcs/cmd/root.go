package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dnbln/upsilon/pkg/dlogger"
	"github.com/dnbln/upsilon/pkg/vcs/actor"
	"github.com/dnbln/upsilon/pkg/vcs/session"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "upsilon-vcs",
	Short: "Inspect a git repository through the upsilon VCS actor",
	Long: `upsilon-vcs drives the same repository actor the upsilon web and API
front ends use, from the command line: commits, trees, branch
contributors and revision diffs, all serviced by a single worker
owning the repository.
`,
}

var params struct {
	repo     string
	logLevel string
	queue    int
}

// used to patch over calls to os.Exit() during test
var logFatalln = log.Fatalln

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&params.repo, "repo", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVar(&params.logLevel, "log-level", dlogger.LogLevelNone, "log level (debug, info, error, none)")
	rootCmd.PersistentFlags().IntVar(&params.queue, "queue-capacity", 0, "capacity of the worker inbound queue")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("repo", ".")
	viper.SetDefault("log-level", dlogger.LogLevelNone)
	if os.Getenv("UPSILON_VCS_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("UPSILON_VCS_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.upsilon")
		viper.AddConfigPath("/etc/upsilon")
		viper.SetConfigName("upsilon-vcs")
	}

	viper.AutomaticEnv() // read in environment variables that match
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	if !rootCmd.PersistentFlags().Changed("repo") {
		params.repo = viper.GetString("repo")
	}
	if !rootCmd.PersistentFlags().Changed("log-level") {
		params.logLevel = viper.GetString("log-level")
	}
}

var viewsOnce sync.Once

func initContext() context.Context {
	opentracing.SetGlobalTracer(opentracing.NoopTracer{})
	viewsOnce.Do(func() {
		if err := actor.RegisterViews(); err != nil {
			log.Println("metrics views:", err)
		}
	})
	return context.Background()
}

// openSession opens the configured repository behind a fresh actor
// session. Callers must Close it.
func openSession() *session.Session {
	logger, err := dlogger.GetConsoleLogger(params.logLevel)
	if err != nil {
		logFatalln(err)
	}
	sess, err := session.Open(params.repo,
		session.WithLogger(logger),
		session.WithQueueCapacity(params.queue),
	)
	if err != nil {
		logFatalln(err)
	}
	return sess
}
