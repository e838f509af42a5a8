package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newDemandCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demand",
		Short: "Demand plan lines",
	}

	var listOpts sopclient.PlanListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List demand plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleDemand); err != nil {
				return err
			}
			var err error
			if listOpts.PeriodFrom != "" {
				if listOpts.PeriodFrom, err = dateArg(listOpts.PeriodFrom); err != nil {
					return err
				}
			}
			if listOpts.PeriodTo != "" {
				if listOpts.PeriodTo, err = dateArg(listOpts.PeriodTo); err != nil {
					return err
				}
			}
			page, err := app.demand.List(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, p := range page.Items {
				rows = append(rows, []string{
					itoa(p.ID), itoa(p.ProductID), p.Period, p.Region, p.Channel,
					p.ForecastQty.String(), p.AdjustedQty.String(), p.Status,
				})
			}
			table([]string{"ID", "PRODUCT", "PERIOD", "REGION", "CHANNEL", "FORECAST", "ADJUSTED", "STATUS"}, rows)
			fmt.Printf("page %d/%d, %d total\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	list.Flags().IntVar(&listOpts.Page, "page", 1, "page number")
	list.Flags().IntVar(&listOpts.PageSize, "page-size", 20, "page size")
	list.Flags().Int64Var(&listOpts.ProductID, "product", 0, "filter by product id")
	list.Flags().StringVar(&listOpts.Status, "status", "", "filter by status")
	list.Flags().StringVar(&listOpts.Region, "region", "", "filter by region")
	list.Flags().StringVar(&listOpts.Channel, "channel", "", "filter by channel")
	list.Flags().StringVar(&listOpts.PeriodFrom, "from", "", "period lower bound (YYYY-MM-DD)")
	list.Flags().StringVar(&listOpts.PeriodTo, "to", "", "period upper bound (YYYY-MM-DD)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one demand plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleDemand); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.demand.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printDemandPlan(p)
			return nil
		},
	}

	var createReq sopclient.CreateDemandPlanRequest
	var forecastQty float64
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a draft demand line",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermDemandPlanWrite); err != nil {
				return err
			}
			period, err := dateArg(createReq.Period)
			if err != nil {
				return err
			}
			createReq.Period = period
			createReq.ForecastQty = sopclient.Num(forecastQty)
			p, err := app.demand.Create(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("Created demand plan %d (%s)\n", p.ID, p.Status)
			return nil
		},
	}
	create.Flags().Int64Var(&createReq.ProductID, "product", 0, "product id")
	create.Flags().StringVar(&createReq.Period, "period", "", "plan period (YYYY-MM-DD)")
	create.Flags().StringVar(&createReq.Region, "region", "", "sales region")
	create.Flags().StringVar(&createReq.Channel, "channel", "", "sales channel")
	create.Flags().Float64Var(&forecastQty, "qty", 0, "forecast quantity")
	create.Flags().StringVar(&createReq.Notes, "notes", "", "planner notes")
	_ = create.MarkFlagRequired("product")
	_ = create.MarkFlagRequired("period")
	_ = create.MarkFlagRequired("qty")

	var adjustNotes string
	var adjustQty float64
	adjust := &cobra.Command{
		Use:   "adjust <id>",
		Short: "Override the forecast quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermDemandPlanWrite); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.demand.Adjust(cmd.Context(), id, adjustQty, adjustNotes)
			if err != nil {
				return err
			}
			fmt.Printf("Plan %d adjusted to %s\n", p.ID, p.AdjustedQty)
			return nil
		},
	}
	adjust.Flags().Float64Var(&adjustQty, "qty", 0, "adjusted quantity")
	adjust.Flags().StringVar(&adjustNotes, "notes", "", "adjustment rationale")
	_ = adjust.MarkFlagRequired("qty")

	submit := &cobra.Command{
		Use:   "submit <id>",
		Short: "Send a draft into review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermDemandPlanWrite); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.demand.Submit(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("Plan %d is now %s\n", p.ID, p.Status)
			return nil
		},
	}

	var comments string
	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a submitted plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermDemandPlanApprove); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.demand.Approve(cmd.Context(), id, comments)
			if err != nil {
				return err
			}
			fmt.Printf("Plan %d is now %s\n", p.ID, p.Status)
			return nil
		},
	}
	approve.Flags().StringVar(&comments, "comments", "", "approval comments")

	var rejectComments string
	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Send a submitted plan back to draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermDemandPlanApprove); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.demand.Reject(cmd.Context(), id, rejectComments)
			if err != nil {
				return err
			}
			fmt.Printf("Plan %d is now %s\n", p.ID, p.Status)
			return nil
		},
	}
	reject.Flags().StringVar(&rejectComments, "comments", "", "rejection comments")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a draft plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermDemandPlanWrite); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.demand.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Plan %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, adjust, submit, approve, reject, del)
	return cmd
}

func printDemandPlan(p *sopclient.DemandPlan) {
	table([]string{"FIELD", "VALUE"}, [][]string{
		{"ID", itoa(p.ID)},
		{"Product", itoa(p.ProductID)},
		{"Period", p.Period},
		{"Region", p.Region},
		{"Channel", p.Channel},
		{"Forecast qty", p.ForecastQty.String()},
		{"Adjusted qty", p.AdjustedQty.String()},
		{"Consensus qty", p.ConsensusQty.String()},
		{"Actual qty", p.ActualQty.String()},
		{"Confidence", p.Confidence.String()},
		{"Status", p.Status},
		{"Version", fmt.Sprintf("%d", p.Version)},
		{"Notes", p.Notes},
	})
}
