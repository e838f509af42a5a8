package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newPrefsCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Local display preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := (*a).prefs
			sidebar := "expanded"
			if p.SidebarCollapsed() {
				sidebar = "collapsed"
			}
			fmt.Printf("theme:   %s\nsidebar: %s\n", p.Theme(), sidebar)
			return nil
		},
	}

	theme := &cobra.Command{
		Use:       "theme <light|dark>",
		Short:     "Set the output theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).prefs.SetTheme(sopclient.Theme(args[0])); err != nil {
				return err
			}
			fmt.Println("Theme set to", (*a).prefs.Theme())
			return nil
		},
	}

	sidebar := &cobra.Command{
		Use:       "sidebar <collapsed|expanded>",
		Short:     "Set the sidebar preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"collapsed", "expanded"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).prefs.SetSidebarCollapsed(args[0] == "collapsed"); err != nil {
				return err
			}
			fmt.Println("Sidebar preference saved.")
			return nil
		},
	}

	cmd.AddCommand(theme, sidebar)
	return cmd
}
