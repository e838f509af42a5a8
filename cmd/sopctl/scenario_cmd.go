package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newScenarioCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "What-if simulations",
	}

	var status string
	var listOpts sopclient.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleScenarios); err != nil {
				return err
			}
			page, err := app.scenarios.List(cmd.Context(), status, listOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, s := range page.Items {
				rows = append(rows, []string{
					itoa(s.ID), s.Name, s.ScenarioType,
					s.RevenueImpact.String(), s.MarginImpact.String(), s.Status,
				})
			}
			table([]string{"ID", "NAME", "TYPE", "REVENUE", "MARGIN", "STATUS"}, rows)
			fmt.Printf("page %d/%d, %d total\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().IntVar(&listOpts.Page, "page", 1, "page number")
	list.Flags().IntVar(&listOpts.PageSize, "page-size", 20, "page size")

	var createReq sopclient.CreateScenarioRequest
	var demandPct, supplyPct, pricePct float64
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a draft scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermScenarioWrite); err != nil {
				return err
			}
			createReq.Parameters = sopclient.ScenarioParameters{
				DemandChangePct:   sopclient.Num(demandPct),
				SupplyCapacityPct: sopclient.Num(supplyPct),
				PriceChangePct:    sopclient.Num(pricePct),
			}
			s, err := app.scenarios.Create(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("Created scenario %d (%s)\n", s.ID, s.Status)
			return nil
		},
	}
	create.Flags().StringVar(&createReq.Name, "name", "", "scenario name")
	create.Flags().StringVar(&createReq.Description, "description", "", "scenario description")
	create.Flags().StringVar(&createReq.ScenarioType, "type", "", "scenario type")
	create.Flags().Float64Var(&demandPct, "demand-pct", 0, "demand change, whole percent")
	create.Flags().Float64Var(&supplyPct, "supply-pct", 0, "supply capacity change, whole percent")
	create.Flags().Float64Var(&pricePct, "price-pct", 0, "price change, whole percent")
	_ = create.MarkFlagRequired("name")

	run := &cobra.Command{
		Use:   "run <id>",
		Short: "Execute the simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermScenarioWrite); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := app.scenarios.Run(cmd.Context(), id)
			if err != nil {
				return err
			}
			table([]string{"IMPACT", "VALUE"}, [][]string{
				{"Revenue", s.RevenueImpact.String()},
				{"Margin", s.MarginImpact.String()},
				{"Inventory", s.InventoryImpact.String()},
				{"Service level", s.ServiceLevelImpact.String()},
			})
			return nil
		},
	}

	submit := &cobra.Command{
		Use:   "submit <id>",
		Short: "Send a scenario into review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermScenarioWrite); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := app.scenarios.Submit(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Scenario %d is now %s\n", s.ID, s.Status)
			return nil
		},
	}

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a submitted scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermScenarioApprove); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := app.scenarios.Approve(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Scenario %d is now %s\n", s.ID, s.Status)
			return nil
		},
	}

	var compareIDs []int64
	compare := &cobra.Command{
		Use:   "compare",
		Short: "Put scenarios side by side",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleScenarios); err != nil {
				return err
			}
			if len(compareIDs) < 2 {
				return fmt.Errorf("need at least two --id values")
			}
			rows, err := app.scenarios.Compare(cmd.Context(), compareIDs)
			if err != nil {
				return err
			}
			out := make([][]string, 0, len(rows))
			for _, r := range rows {
				out = append(out, []string{
					r.Name, r.ScenarioType,
					r.RevenueImpact.String(), r.MarginImpact.String(),
					r.InventoryImpact.String(), r.ServiceLevelImpact.String(),
				})
			}
			table([]string{"SCENARIO", "TYPE", "REVENUE", "MARGIN", "INVENTORY", "SERVICE"}, out)
			return nil
		},
	}
	compare.Flags().Int64SliceVar(&compareIDs, "id", nil, "scenario id (repeat at least twice)")

	cmd.AddCommand(list, create, run, submit, approve, compare)
	return cmd
}
