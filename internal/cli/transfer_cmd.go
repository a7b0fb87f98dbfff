package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/plangrid/internal/cli/formatter"
	"github.com/alexanderramin/plangrid/internal/exchange"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the active planning's content with a JSON document",
		Long: `Import a planning export or a legacy project array.

Application exports apply their timeline config and groups; every project is
snapped to the grid. Pass "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			if len(app.Store.Projects()) > 0 {
				ok, err := confirm(app, yes, "Replace current planning?", "Existing projects of the active planning will be replaced.")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			result, err := app.Store.Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Imported %d projects and %d groups (%s format)",
				result.Projects, result.Groups, result.Format))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active planning",
		Long: `Export the active planning as JSON (importable) or YAML.

--out accepts a file path, a directory (a timestamped file name is used) or
"-" for stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.Store.Export()

			var data []byte
			var err error
			ext := strings.ToLower(format)
			switch ext {
			case "json":
				data, err = env.JSON()
			case "yaml", "yml":
				ext = "yaml"
				data, err = env.YAML()
			default:
				return fmt.Errorf("unsupported format %q (use json or yaml)", format)
			}
			if err != nil {
				return err
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			path := out
			if info, statErr := os.Stat(out); statErr == nil && info.IsDir() {
				path = filepath.Join(out, exchange.FileName(app.now(), ext))
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Exported %d projects to %s", len(env.Projects), path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, directory or - for stdout")

	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the active planning to the default grid and groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(app, yes, "Reset planning?", "All projects of the active planning will be removed.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			if err := app.Store.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Planning reset"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
