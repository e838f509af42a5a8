package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newCycleCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Monthly S&OP cycles",
	}

	var status string
	var listOpts sopclient.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleSOPCycle); err != nil {
				return err
			}
			page, err := app.cycles.List(cmd.Context(), status, listOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, c := range page.Items {
				rows = append(rows, []string{
					itoa(c.ID), c.CycleName, c.Period.Format("2006-01"),
					fmt.Sprintf("%d %s", c.CurrentStep, c.CurrentStepName), c.OverallStatus,
				})
			}
			table([]string{"ID", "CYCLE", "PERIOD", "STEP", "STATUS"}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by overall status")
	list.Flags().IntVar(&listOpts.Page, "page", 1, "page number")
	list.Flags().IntVar(&listOpts.PageSize, "page-size", 20, "page size")

	active := &cobra.Command{
		Use:   "active",
		Short: "Show the cycle in progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleSOPCycle); err != nil {
				return err
			}
			c, err := app.cycles.GetActive(cmd.Context())
			if errors.Is(err, sopclient.ErrNotFound) {
				fmt.Println("No cycle in progress.")
				return nil
			}
			if err != nil {
				return err
			}
			printCycle(c)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleSOPCycle); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.cycles.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printCycle(c)
			return nil
		},
	}

	var name, period, notes string
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a monthly cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermSOPManage); err != nil {
				return err
			}
			p, err := time.Parse("2006-01-02", period)
			if err != nil {
				return fmt.Errorf("invalid --period, want YYYY-MM-DD: %w", err)
			}
			c, err := app.cycles.Create(cmd.Context(), sopclient.CreateSOPCycleRequest{
				CycleName: name,
				Period:    p,
				Notes:     notes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Opened cycle %d (%s)\n", c.ID, c.CycleName)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "cycle name")
	create.Flags().StringVar(&period, "period", "", "cycle period (YYYY-MM-DD)")
	create.Flags().StringVar(&notes, "notes", "", "cycle notes")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("period")

	advance := &cobra.Command{
		Use:   "advance <id>",
		Short: "Complete the current step and move on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermSOPManage); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.cycles.Advance(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Cycle %d now at step %d: %s\n", c.ID, c.CurrentStep, c.CurrentStepName)
			return nil
		},
	}

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Close the cycle after the last step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermSOPManage); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.cycles.Complete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Cycle %d is %s\n", c.ID, c.OverallStatus)
			return nil
		},
	}

	var outPath string
	report := &cobra.Command{
		Use:   "report <id>",
		Short: "Download the cycle summary PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleSOPCycle); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pdf, err := app.cycles.Report(cmd.Context(), id)
			if err != nil {
				return err
			}
			path := outPath
			if path == "" {
				path = fmt.Sprintf("sop-cycle-%d.pdf", id)
			}
			if err := os.WriteFile(path, pdf, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", path, len(pdf))
			return nil
		},
	}
	report.Flags().StringVarP(&outPath, "output", "o", "", "output file (default sop-cycle-<id>.pdf)")

	cmd.AddCommand(list, active, show, create, advance, complete, report)
	return cmd
}

func printCycle(c *sopclient.SOPCycle) {
	fmt.Printf("%s  period %s  step %d (%s)  %s\n",
		c.CycleName, c.Period.Format("2006-01"), c.CurrentStep, c.CurrentStepName, c.OverallStatus)
	rows := make([][]string, 0, len(c.Steps))
	for _, s := range c.Steps {
		due := ""
		if s.DueDate != nil {
			due = s.DueDate.Format("2006-01-02")
		}
		rows = append(rows, []string{fmt.Sprintf("%d", s.Step), s.Name, s.Status, due})
	}
	table([]string{"#", "STEP", "STATUS", "DUE"}, rows)
	if c.Decisions != "" {
		fmt.Println("Decisions:", c.Decisions)
	}
	if c.ActionItems != "" {
		fmt.Println("Actions:", c.ActionItems)
	}
}
