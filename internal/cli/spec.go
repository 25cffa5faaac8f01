package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gobd/apispec"
	"github.com/Gobd/apispec/internal/demo"
)

func newSpecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Print the demo API's OpenAPI document",
		Example: strings.TrimSpace(`  apispec-demo spec
  apispec-demo --config openapi.yaml spec --format yaml`),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "json" && format != "yaml" {
				return newUsageError(fmt.Sprintf("invalid --format %q: expected json or yaml\n\n%s", format, cmd.UsageString()))
			}
			doc, err := loadDocConfig(cmd, demo.DefaultConfig())
			if err != nil {
				return err
			}
			return writeSpec(cmd.OutOrStdout(), doc, format)
		},
	}
	cmd.Flags().StringP("format", "f", "json", "Output format (json|yaml)")
	return cmd
}

func writeSpec(w io.Writer, cfg apispec.Config, format string) error {
	cfg.InPlace = true
	app, err := demo.New(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}
	if format == "json" {
		b, err := app.Spec.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	snap, err := app.Spec.Snapshot()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return err
	}
	return enc.Close()
}
