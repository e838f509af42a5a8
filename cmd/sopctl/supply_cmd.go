package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newSupplyCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supply",
		Short: "Supply commitment lines",
	}

	var listOpts sopclient.PlanListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List supply plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleSupply); err != nil {
				return err
			}
			page, err := app.supply.List(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, p := range page.Items {
				rows = append(rows, []string{
					itoa(p.ID), itoa(p.ProductID), p.Period, p.Location,
					p.PlannedProdQty.String(), p.CapacityMax.String(), p.Status,
				})
			}
			table([]string{"ID", "PRODUCT", "PERIOD", "LOCATION", "PLANNED", "CAPACITY", "STATUS"}, rows)
			fmt.Printf("page %d/%d, %d total\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	list.Flags().IntVar(&listOpts.Page, "page", 1, "page number")
	list.Flags().IntVar(&listOpts.PageSize, "page-size", 20, "page size")
	list.Flags().Int64Var(&listOpts.ProductID, "product", 0, "filter by product id")
	list.Flags().StringVar(&listOpts.Status, "status", "", "filter by status")
	list.Flags().StringVar(&listOpts.Location, "location", "", "filter by location")

	var createReq sopclient.CreateSupplyPlanRequest
	var plannedQty, capacityMax float64
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a commitment line",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermSupplyPlanWrite); err != nil {
				return err
			}
			period, err := dateArg(createReq.Period)
			if err != nil {
				return err
			}
			createReq.Period = period
			if plannedQty > 0 {
				q := sopclient.Num(plannedQty)
				createReq.PlannedProdQty = &q
			}
			if capacityMax > 0 {
				q := sopclient.Num(capacityMax)
				createReq.CapacityMax = &q
			}
			p, err := app.supply.Create(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("Created supply plan %d (%s)\n", p.ID, p.Status)
			return nil
		},
	}
	create.Flags().Int64Var(&createReq.ProductID, "product", 0, "product id")
	create.Flags().StringVar(&createReq.Period, "period", "", "plan period (YYYY-MM-DD)")
	create.Flags().StringVar(&createReq.Location, "location", "", "production location")
	create.Flags().Float64Var(&plannedQty, "qty", 0, "planned production quantity")
	create.Flags().Float64Var(&capacityMax, "capacity", 0, "maximum capacity")
	create.Flags().StringVar(&createReq.SupplierName, "supplier", "", "supplier name")
	_ = create.MarkFlagRequired("product")
	_ = create.MarkFlagRequired("period")

	submit := &cobra.Command{
		Use:   "submit <id>",
		Short: "Send a draft into review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermSupplyPlanWrite); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.supply.Submit(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Plan %d is now %s\n", p.ID, p.Status)
			return nil
		},
	}

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a submitted plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermSupplyPlanApprove); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.supply.Approve(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Plan %d is now %s\n", p.ID, p.Status)
			return nil
		},
	}

	var gapPeriod string
	gap := &cobra.Command{
		Use:   "gap",
		Short: "Demand vs supply gap analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleSupply); err != nil {
				return err
			}
			items, err := app.supply.GapAnalysis(cmd.Context(), gapPeriod)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, g := range items {
				rows = append(rows, []string{
					g.SKU, g.ProductName, g.Period,
					g.DemandQty.String(), g.SupplyQty.String(), g.Gap.String(), g.Status,
				})
			}
			table([]string{"SKU", "PRODUCT", "PERIOD", "DEMAND", "SUPPLY", "GAP", "STATUS"}, rows)
			return nil
		},
	}
	gap.Flags().StringVar(&gapPeriod, "period", "", "period (YYYY-MM-DD), defaults to the current month")

	cmd.AddCommand(list, create, submit, approve, gap)
	return cmd
}
