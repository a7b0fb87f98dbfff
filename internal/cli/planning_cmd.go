package cli

import (
	"fmt"

	"github.com/alexanderramin/plangrid/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanningCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "planning",
		Aliases: []string{"plannings"},
		Short:   "Manage plannings",
	}

	cmd.AddCommand(
		newPlanningListCmd(app),
		newPlanningCreateCmd(app),
		newPlanningLoadCmd(app),
		newPlanningRenameCmd(app),
		newPlanningDuplicateCmd(app),
		newPlanningDeleteCmd(app),
	)

	return cmd
}

func newPlanningListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plannings, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanningList(app.Store.Plannings()))
			return nil
		},
	}
}

func newPlanningCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create an empty planning and make it active",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			id, err := app.Store.CreatePlanning(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Created planning %s [%s]", app.Store.CurrentPlanning().Name, id))
			return nil
		},
	}
}

func newPlanningLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "load <planning>",
		Aliases: []string{"use"},
		Short:   "Make a planning active",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanningID(app.Store, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.LoadPlanning(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Loaded planning %s", app.Store.CurrentPlanning().Name))
			return nil
		},
	}
}

func newPlanningRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <planning> <name>",
		Short: "Rename a planning",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanningID(app.Store, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.RenamePlanning(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Renamed planning %s to %s", id, args[1]))
			return nil
		},
	}
}

func newPlanningDuplicateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "duplicate <planning>",
		Short: "Copy a planning under fresh ids and make the copy active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanningID(app.Store, args[0])
			if err != nil {
				return err
			}
			newID, err := app.Store.DuplicatePlanning(cmd.Context(), id, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Duplicated into %s [%s]", app.Store.CurrentPlanning().Name, newID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the copy (default: \"<name> (copy)\")")

	return cmd
}

func newPlanningDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <planning>",
		Aliases: []string{"rm"},
		Short:   "Delete a planning",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanningID(app.Store, args[0])
			if err != nil {
				return err
			}

			ok, err := confirm(app, yes, "Delete planning?", fmt.Sprintf("Planning %s and all its projects will be removed.", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			if err := app.Store.DeletePlanning(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted planning %s", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
