package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newDashboardCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Executive summary and alert feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleDashboard); err != nil {
				return err
			}

			// summary and alerts are independent fetches
			var (
				summary *sopclient.DashboardSummary
				alerts  []sopclient.DashboardAlert
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				summary, err = app.dashboard.Summary(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				alerts, err = app.dashboard.Alerts(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Printf("Demand plans:     %d (%d awaiting approval)\n", summary.DemandPlansCount, summary.PendingApprovals)
			fmt.Printf("Inventory alerts: %d (%d low stock)\n", summary.InventoryAlerts, summary.LowStockCount)
			fmt.Printf("Inventory value:  %.2f\n", summary.TotalInventoryValue)
			fmt.Printf("Forecast accuracy: %.1f%%   OTIF: %.1f%%\n", summary.ForecastAccuracy, summary.OTIFRate)
			if summary.ActiveSOPCycle != "" {
				fmt.Printf("Active cycle:     %s (%s)\n", summary.ActiveSOPCycle, summary.SOPCycleStage)
			} else {
				fmt.Println("Active cycle:     none")
			}

			if len(alerts) == 0 {
				fmt.Println("\nNo alerts.")
				return nil
			}
			fmt.Println()
			rows := make([][]string, 0, len(alerts))
			for _, al := range alerts {
				rows = append(rows, []string{al.Severity, al.Title, al.Message})
			}
			table([]string{"SEVERITY", "ALERT", "DETAIL"}, rows)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sop-status",
		Short: "Current cycle step progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleDashboard); err != nil {
				return err
			}
			st, err := app.dashboard.SOPStatus(cmd.Context())
			if err != nil {
				return err
			}
			if !st.Active {
				fmt.Println(st.Message)
				return nil
			}
			fmt.Printf("%s (step %d, %s)\n", st.Name, st.CurrentStep, st.OverallStatus)
			rows := make([][]string, 0, len(st.Steps))
			for _, step := range st.Steps {
				rows = append(rows, []string{fmt.Sprintf("%d", step.Step), step.Name, step.Status})
			}
			table([]string{"#", "STEP", "STATUS"}, rows)
			return nil
		},
	})
	return cmd
}
