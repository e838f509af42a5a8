package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newKPICmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Performance metrics",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Latest metrics grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleKPI); err != nil {
				return err
			}
			d, err := app.kpis.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			for _, group := range []struct {
				name    string
				metrics []sopclient.KPIMetric
			}{
				{"demand", d.Demand},
				{"supply", d.Supply},
				{"inventory", d.Inventory},
				{"financial", d.Financial},
				{"service", d.Service},
			} {
				if len(group.metrics) == 0 {
					continue
				}
				fmt.Printf("\n%s\n", group.name)
				rows := make([][]string, 0, len(group.metrics))
				for _, m := range group.metrics {
					rows = append(rows, []string{
						m.MetricName, m.Value.String(), m.Target.String(),
						m.VariancePct.String(), m.Trend,
					})
				}
				table([]string{"METRIC", "VALUE", "TARGET", "VAR %", "TREND"}, rows)
			}
			return nil
		},
	}

	var trendCategory string
	var trendMonths int
	trends := &cobra.Command{
		Use:   "trends",
		Short: "Metric series over the lookback window",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleKPI); err != nil {
				return err
			}
			series, err := app.kpis.Trends(cmd.Context(), trendCategory, trendMonths)
			if err != nil {
				return err
			}
			for _, tr := range series {
				fmt.Printf("\n%s (%s)\n", tr.MetricName, tr.Category)
				rows := make([][]string, 0, len(tr.Points))
				for _, pt := range tr.Points {
					rows = append(rows, []string{pt.Period, pt.Value.String(), pt.Target.String()})
				}
				table([]string{"PERIOD", "VALUE", "TARGET"}, rows)
			}
			return nil
		},
	}
	trends.Flags().StringVar(&trendCategory, "category", "", "restrict to one category")
	trends.Flags().IntVar(&trendMonths, "months", 12, "lookback window in months")

	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Metrics breaching their targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleKPI); err != nil {
				return err
			}
			items, err := app.kpis.Alerts(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, al := range items {
				rows = append(rows, []string{
					al.MetricName, al.Category, al.Value.String(),
					al.Target.String(), al.VariancePct.String(), al.Severity,
				})
			}
			table([]string{"METRIC", "CATEGORY", "VALUE", "TARGET", "VAR %", "SEVERITY"}, rows)
			return nil
		},
	}

	var recordReq sopclient.CreateKPIRequest
	var value, target float64
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a measurement",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermKPIManage); err != nil {
				return err
			}
			period, err := dateArg(recordReq.Period)
			if err != nil {
				return err
			}
			recordReq.Period = period
			recordReq.Value = sopclient.Num(value)
			if cmd.Flags().Changed("target") {
				tg := sopclient.Num(target)
				recordReq.Target = &tg
			}
			m, err := app.kpis.Create(cmd.Context(), recordReq)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s = %s (trend %s)\n", m.MetricName, m.Value, m.Trend)
			return nil
		},
	}
	record.Flags().StringVar(&recordReq.MetricName, "name", "", "metric name")
	record.Flags().StringVar(&recordReq.MetricCategory, "category", "", "metric category")
	record.Flags().StringVar(&recordReq.Period, "period", "", "period (YYYY-MM-DD)")
	record.Flags().Float64Var(&value, "value", 0, "measured value")
	record.Flags().Float64Var(&target, "target", 0, "target value")
	record.Flags().StringVar(&recordReq.Unit, "unit", "", "unit of measure")
	_ = record.MarkFlagRequired("name")
	_ = record.MarkFlagRequired("category")
	_ = record.MarkFlagRequired("period")
	_ = record.MarkFlagRequired("value")

	var targetName string
	var newTarget float64
	setTarget := &cobra.Command{
		Use:   "set-target",
		Short: "Re-target a metric",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermKPIManage); err != nil {
				return err
			}
			m, err := app.kpis.SetTarget(cmd.Context(), targetName, newTarget)
			if err != nil {
				return err
			}
			fmt.Printf("%s target is now %s\n", m.MetricName, m.Target)
			return nil
		},
	}
	setTarget.Flags().StringVar(&targetName, "name", "", "metric name")
	setTarget.Flags().Float64Var(&newTarget, "target", 0, "new target")
	_ = setTarget.MarkFlagRequired("name")
	_ = setTarget.MarkFlagRequired("target")

	cmd.AddCommand(dashboard, trends, alerts, record, setTarget)
	return cmd
}
