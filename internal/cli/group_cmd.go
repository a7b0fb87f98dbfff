package cli

import (
	"fmt"

	"github.com/alexanderramin/plangrid/internal/cli/formatter"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/spf13/cobra"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "group",
		Aliases: []string{"groups"},
		Short:   "Manage project groups of the active planning",
	}

	cmd.AddCommand(
		newGroupListCmd(app),
		newGroupAddCmd(app),
		newGroupUpdateCmd(app),
		newGroupDeleteCmd(app),
	)

	return cmd
}

func newGroupListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups with their project counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts := make(map[string]int)
			for _, p := range app.Store.Projects() {
				counts[p.GroupID]++
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGroupList(app.Store.Groups(), counts))
			return nil
		},
	}
}

func newGroupAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.Store.AddGroup(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Added group %s [%s] %s", g.Name, g.ID, formatter.Swatch(g.Color)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Group color (hex)")

	return cmd
}

func newGroupUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <group>",
		Short: "Rename or recolor a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGroupID(app.Store, args[0])
			if err != nil {
				return err
			}

			var patch domain.GroupPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}

			g, err := app.Store.UpdateGroup(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated group %s [%s] %s", g.Name, g.ID, formatter.Swatch(g.Color)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name")
	cmd.Flags().StringVar(&color, "color", "", "Group color (hex)")

	return cmd
}

func newGroupDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <group>",
		Aliases: []string{"rm"},
		Short:   "Delete a group; its projects move to the first remaining group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveGroupID(app.Store, args[0])
			if err != nil {
				return err
			}

			ok, err := confirm(app, yes, "Delete group?", fmt.Sprintf("Projects of group %s will move to the first remaining group.", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}

			if err := app.Store.DeleteGroup(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted group %s", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
