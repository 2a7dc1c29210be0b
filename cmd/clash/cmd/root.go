// Package cmd implements the clash CLI commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/clash/internal/game/ability"
)

// NewRootCmd builds the clash command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clash",
		Short: "Stance combat resolver",
		Long: `clash resolves stance combat rounds without a server.

Use "clash [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("abilities", "", "ability catalog YAML file (default: built-in catalog)")
	root.AddCommand(newResolveCmd(), newAbilitiesCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog(cmd *cobra.Command) (*ability.Registry, error) {
	path, err := cmd.Flags().GetString("abilities")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return ability.Default()
	}
	return ability.Load(path)
}
