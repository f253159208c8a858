package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"railshift/client"
	"railshift/logging"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

type globalFlags struct {
	baseURL string
	token   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "shiftctl",
		Short:         "Operator tool for the rail shift API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.baseURL, "base-url", envOr("RAILSHIFT_API_URL", "http://localhost:8080"), "API base URL")
	cmd.PersistentFlags().StringVar(&g.token, "token", os.Getenv("RAILSHIFT_API_TOKEN"), "API key sent as bearer token")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log API calls to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newReasonsCmd(g))
	cmd.AddCommand(newWagonsCmd(g))
	cmd.AddCommand(newLocomotivesCmd(g))
	cmd.AddCommand(newManifestCmd(g))
	cmd.AddCommand(newDaysCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shiftctl %s (commit: %s)\n", Version, Commit)
		},
	}
}

// client builds an API client from the global flags.
func (g *globalFlags) client() (*client.Client, error) {
	logger := zap.NewNop()
	if g.verbose {
		l, err := logging.New("debug", "console")
		if err != nil {
			return nil, err
		}
		logger = l
	}
	return client.New(g.baseURL, client.WithToken(g.token), client.WithLogger(logger)), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
