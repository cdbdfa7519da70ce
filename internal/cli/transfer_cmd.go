package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/ticketline/internal/board"
	"github.com/alexanderramin/ticketline/internal/importer"
	"github.com/spf13/cobra"
)

func newRecomputeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Reschedule every open ticket from the current order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Board.Apply(cmd.Context(), "recompute", board.Board.Recompute)
			if err != nil {
				return err
			}
			open := 0
			for _, t := range b.Tickets {
				if !t.IsDone() {
					open++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %d open tickets\n", open)
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the board with a JSON, JSONC or YAML board file",
		Long: `Replace the board with the contents of a board file.

The format follows the extension: .json, .jsonc (comments and trailing
commas allowed), .yaml or .yml. The file is validated as a whole and every
problem is reported before anything is stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := importer.LoadFile(args[0])
			if err != nil {
				return err
			}
			b, err := app.Board.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tickets, %d teams, %d categories, %d holidays\n",
				len(b.Tickets), len(b.Teams), len(b.Categories), len(b.Holidays))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				fm  importer.Format
				err error
			)
			switch {
			case format != "":
				fm, err = importer.ParseFormat(format)
			case output != "":
				fm, err = importer.FormatFromPath(output)
			default:
				fm = importer.FormatJSON
			}
			if err != nil {
				return err
			}
			if fm == importer.FormatJSONC {
				fm = importer.FormatJSON
			}

			f, err := app.Board.Export(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				return importer.Encode(cmd.OutOrStdout(), f, fm)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := importer.Encode(file, f, fm); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tickets to %s\n", len(f.Tickets), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from the output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
