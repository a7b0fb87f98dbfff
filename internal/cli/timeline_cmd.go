package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/cli/formatter"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show or change the calendar grid of the active planning",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTimeline(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the timeline configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showTimeline(cmd, app)
			},
		},
		newTimelineSetCmd(app),
		newTimelinePeriodsCmd(app),
	)

	return cmd
}

func showTimeline(cmd *cobra.Command, app *App) error {
	cfg := app.Store.TimelineConfig()
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimelineConfig(cfg, len(app.Store.Cells()), len(app.Store.Cards())))
	return nil
}

func newTimelineSetCmd(app *App) *cobra.Command {
	var granularity, splitUnit, labelFormat, snap string
	var step, splitSize int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change timeline settings; projects are re-aligned to the new grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.TimelineConfigPatch
			var parseErr error
			cmd.Flags().Visit(func(f *pflag.Flag) {
				switch f.Name {
				case "start", "end":
					d, err := domain.ParseDate(f.Value.String())
					if err != nil {
						parseErr = errors.Join(parseErr, fmt.Errorf("invalid %s date: %w", f.Name, err))
						return
					}
					if f.Name == "start" {
						patch.StartDate = &d
					} else {
						patch.EndDate = &d
					}
				case "granularity":
					g := domain.Granularity(strings.ToLower(granularity))
					patch.Granularity = &g
				case "step":
					patch.Step = &step
				case "split-unit":
					u := domain.CardSplitUnit(strings.ToLower(splitUnit))
					patch.CardSplitUnit = &u
				case "split-size":
					patch.CardSplitSize = &splitSize
				case "label-format":
					patch.LabelFormat = &labelFormat
				case "snap":
					m := domain.SnapMode(snap)
					patch.SnapMode = &m
				}
			})
			if parseErr != nil {
				return parseErr
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change, pass at least one flag")
			}

			results, err := app.Store.UpdateTimelineConfig(cmd.Context(), patch)
			if err != nil {
				return err
			}

			if err := showTimeline(cmd, app); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatReconciliations(app, results))
			return nil
		},
	}

	cmd.Flags().String("start", "", "Grid start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Grid end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&granularity, "granularity", "", "week, month, quarter, half-year or year")
	cmd.Flags().IntVar(&step, "step", 1, "Periods per cell")
	cmd.Flags().StringVar(&splitUnit, "split-unit", "", "Card split unit: none, month, quarter, half-year or year")
	cmd.Flags().IntVar(&splitSize, "split-size", 1, "Units per card")
	cmd.Flags().StringVar(&labelFormat, "label-format", "", "Cell label format (empty for default)")
	cmd.Flags().StringVar(&snap, "snap", "", "Snap mode: cell or subCell")

	return cmd
}

func formatReconciliations(app *App, results []store.Reconciliation) string {
	var rows [][]string
	for _, r := range results {
		if !r.Adjusted {
			continue
		}
		name := r.ProjectID
		if p, ok := app.Store.Project(r.ProjectID); ok {
			name = p.Name
		}
		rows = append(rows, []string{name, domain.FormatDate(r.Start), domain.FormatDate(r.End)})
	}
	if len(rows) == 0 {
		return formatter.Dim(fmt.Sprintf("%d projects already aligned.", len(results)))
	}
	return formatter.Warning("%d of %d projects re-aligned", len(rows), len(results)) + "\n" +
		formatter.RenderTable([]string{"PROJECT", "START", "END"}, rows)
}

func newTimelinePeriodsCmd(app *App) *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List selectable periods within the grid range",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Store.TimelineConfig()
			g := cfg.Granularity
			if granularity != "" {
				g = domain.Granularity(strings.ToLower(granularity))
				if !domain.ValidGranularities[string(g)] {
					return fmt.Errorf("%w: unknown granularity %q", domain.ErrInvalidConfig, granularity)
				}
			}
			choices := calendar.PeriodOptions(g, cfg.StartDate.Year(), cfg.EndDate.Year())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPeriodChoices(choices, g))
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "", "Granularity (default: the timeline's)")

	return cmd
}

func newCellsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cells",
		Short: "List the grid cells of the active planning",
		RunE: func(cmd *cobra.Command, args []string) error {
			cells := app.Store.Cells()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCells(cells))
			if len(cells) >= calendar.MaxCells {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Warning("Grid truncated at %d cells.", calendar.MaxCells))
			}
			return nil
		},
	}
}

func newCardsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List the cards of the active planning",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards := app.Store.Cards()
			counts := make([]int, len(cards))
			for i := range cards {
				counts[i] = len(app.Store.ProjectsForCard(i))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCards(cards, counts))
			return nil
		},
	}
}
