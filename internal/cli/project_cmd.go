package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/cli/formatter"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects of the active planning",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectUpdateCmd(app),
		newProjectMoveCmd(app),
		newProjectResizeCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, code, group, start, end, color string
	var row int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project; its dates are snapped to the grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, endDate, err := parseRange(start, end)
			if err != nil {
				return err
			}

			p := domain.Project{
				Code:          code,
				Name:          name,
				StartDate:     startDate,
				EndDate:       endDate,
				Row:           row,
				ColorOverride: color,
			}
			if group != "" {
				if p.GroupID, err = resolveGroupID(app.Store, group); err != nil {
					return err
				}
			}

			created, err := app.Store.AddProject(cmd.Context(), p)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Added project %s [%s] %s → %s",
				created.Name, created.ID,
				domain.FormatDate(created.StartDate), domain.FormatDate(created.EndDate)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&code, "code", "", "Project code")
	cmd.Flags().StringVar(&group, "group", "", "Group ID or name (default: first group)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date, exclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&row, "row", 0, "Display row")
	cmd.Flags().StringVar(&color, "color", "", "Color override (hex)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var card int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := app.Store.Projects()
			if cmd.Flags().Changed("card") {
				if card < 0 || card >= len(app.Store.Cards()) {
					return fmt.Errorf("card %d %w", card, domain.ErrNotFound)
				}
				projects = app.Store.ProjectsForCard(card)
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projectRows(app, projects), app.Store.TimelineConfig().Granularity))
			return nil
		},
	}

	cmd.Flags().IntVar(&card, "card", 0, "Only projects overlapping this card index")

	return cmd
}

func projectRows(app *App, projects []domain.Project) []formatter.ProjectRow {
	cells := app.Store.Cells()
	selected := app.Store.SelectedProjectID()

	rows := make([]formatter.ProjectRow, 0, len(projects))
	for _, p := range projects {
		var groupName string
		if g, ok := app.Store.Group(p.GroupID); ok {
			groupName = g.Name
		}
		rows = append(rows, formatter.ProjectRow{
			Project:   p,
			GroupName: groupName,
			Color:     app.Store.ProjectColor(p),
			Span:      calendar.ToSpan(p.StartDate, p.EndDate, cells),
			Selected:  p.ID == selected,
		})
	}
	return rows
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, code, group, start, end, color string
	var row int

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update project fields; changed dates are re-snapped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app.Store, args[0])
			if err != nil {
				return err
			}

			var patch domain.ProjectPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("code") {
				patch.Code = &code
			}
			if flags.Changed("group") {
				groupID, err := resolveGroupID(app.Store, group)
				if err != nil {
					return err
				}
				patch.GroupID = &groupID
			}
			if flags.Changed("start") {
				d, err := domain.ParseDate(start)
				if err != nil {
					return fmt.Errorf("invalid start date: %w", err)
				}
				patch.StartDate = &d
			}
			if flags.Changed("end") {
				d, err := domain.ParseDate(end)
				if err != nil {
					return fmt.Errorf("invalid end date: %w", err)
				}
				patch.EndDate = &d
			}
			if flags.Changed("row") {
				patch.Row = &row
			}
			if flags.Changed("color") {
				patch.ColorOverride = &color
			}

			updated, err := app.Store.UpdateProject(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated project %s [%s]", updated.Name, updated.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&code, "code", "", "Project code")
	cmd.Flags().StringVar(&group, "group", "", "Group ID or name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date, exclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&row, "row", 0, "Display row")
	cmd.Flags().StringVar(&color, "color", "", "Color override (hex, empty to clear)")

	return cmd
}

func newProjectMoveCmd(app *App) *cobra.Command {
	var start, end string
	var row int

	cmd := &cobra.Command{
		Use:   "move <project>",
		Short: "Move a project to new dates and optionally a new row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app.Store, args[0])
			if err != nil {
				return err
			}
			startDate, endDate, err := parseRange(start, end)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("row") {
				current, _ := app.Store.Project(id)
				row = current.Row
			}

			moved, err := app.Store.MoveProject(cmd.Context(), id, startDate, endDate, row)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Moved %s to %s → %s (row %d)",
				moved.Name, domain.FormatDate(moved.StartDate), domain.FormatDate(moved.EndDate), moved.Row))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date, exclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&row, "row", 0, "Display row (default: unchanged)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newProjectResizeCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "resize <project>",
		Short: "Change a project's dates, keeping at least one cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app.Store, args[0])
			if err != nil {
				return err
			}

			current, _ := app.Store.Project(id)
			startDate, endDate := current.StartDate, current.EndDate
			if cmd.Flags().Changed("start") {
				if startDate, err = domain.ParseDate(start); err != nil {
					return fmt.Errorf("invalid start date: %w", err)
				}
			}
			if cmd.Flags().Changed("end") {
				if endDate, err = domain.ParseDate(end); err != nil {
					return fmt.Errorf("invalid end date: %w", err)
				}
			}

			resized, err := app.Store.ResizeProject(cmd.Context(), id, startDate, endDate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Resized %s to %s → %s",
				resized.Name, domain.FormatDate(resized.StartDate), domain.FormatDate(resized.EndDate)))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (default: unchanged)")
	cmd.Flags().StringVar(&end, "end", "", "End date, exclusive (default: unchanged)")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <project>",
		Aliases: []string{"delete", "rm"},
		Short:   "Remove a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app.Store, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteProject(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Removed project %s", id))
			return nil
		},
	}
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := domain.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := domain.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	return startDate, endDate, nil
}
