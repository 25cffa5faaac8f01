// Package cli implements the apispec-demo command line.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gobd/apispec"
)

// Execute runs the apispec-demo CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apispec-demo",
		Short:         "Serve and document the demo users API",
		Long:          "apispec-demo runs a toy users API whose OpenAPI document and request validation come from apispec.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.SetFlagErrorFunc(flagError)
	cmd.PersistentFlags().StringP("config", "c", "", "OpenAPI config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	for _, sub := range []*cobra.Command{newServeCmd(), newSpecCmd()} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}
	return cmd
}

func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}

// loadDocConfig starts from the demo defaults and overlays --config.
func loadDocConfig(cmd *cobra.Command, defaults apispec.Config) (apispec.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return apispec.Config{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return defaults, nil
	}
	return apispec.LoadConfigOver(defaults, path)
}
