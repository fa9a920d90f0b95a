// Package service holds the yatube command line: the API server and the
// database and account maintenance commands.
package service

import (
	"fmt"

	"yatube/app/config"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X yatube/service.Version=...".
var Version = "dev"

// Execute runs the yatube command line
func Execute() error { return NewRootCommand().Execute() }

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "yatube",
		Short:         "Blog API with posts, groups and comments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: ./yatube.yaml, ./configs, /etc/yatube)")

	// configured reads the config file once flags are parsed
	configured := func() (*config.Config, error) {
		return config.Read(cfgPath)
	}

	root.AddCommand(
		cmdServe(configured),
		cmdDB(configured),
		cmdUsers(configured),
		cmdGroups(configured),
		cmdVersion(),
	)
	return root
}

func cmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yatube version %s\n", Version)
		},
	}
}
