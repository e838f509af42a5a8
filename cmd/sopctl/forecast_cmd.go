package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newForecastCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Statistical demand forecasts",
	}

	var genOpts sopclient.GenerateOptions
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Run a forecast model for a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermForecastGenerate); err != nil {
				return err
			}
			forecasts, err := app.forecasts.Generate(cmd.Context(), genOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(forecasts))
			for _, f := range forecasts {
				rows = append(rows, []string{
					f.Period, f.ModelType, f.PredictedQty.String(),
					f.LowerBound.String(), f.UpperBound.String(),
				})
			}
			table([]string{"PERIOD", "MODEL", "PREDICTED", "LOWER", "UPPER"}, rows)
			return nil
		},
	}
	generate.Flags().Int64Var(&genOpts.ProductID, "product", 0, "product id")
	generate.Flags().StringVar(&genOpts.ModelType, "model", "", "model type (empty auto-selects)")
	generate.Flags().IntVar(&genOpts.PeriodsAhead, "periods", 0, "periods ahead")
	_ = generate.MarkFlagRequired("product")

	var listOpts sopclient.ForecastListOptions
	results := &cobra.Command{
		Use:   "results",
		Short: "List stored forecasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleForecasting); err != nil {
				return err
			}
			page, err := app.forecasts.Results(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, f := range page.Items {
				rows = append(rows, []string{
					itoa(f.ID), itoa(f.ProductID), f.Period, f.ModelType,
					f.PredictedQty.String(), f.MAPE.String(),
				})
			}
			table([]string{"ID", "PRODUCT", "PERIOD", "MODEL", "PREDICTED", "MAPE"}, rows)
			return nil
		},
	}
	results.Flags().Int64Var(&listOpts.ProductID, "product", 0, "filter by product id")
	results.Flags().StringVar(&listOpts.ModelType, "model", "", "filter by model type")

	models := &cobra.Command{
		Use:   "models",
		Short: "List advertised model tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleForecasting); err != nil {
				return err
			}
			infos, err := app.forecasts.Models(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(infos))
			for _, m := range infos {
				avail := "no"
				if m.Available {
					avail = "yes"
				}
				rows = append(rows, []string{m.ModelType, m.Name, fmt.Sprintf("%d", m.MinHistory), avail})
			}
			table([]string{"MODEL", "NAME", "MIN HISTORY", "AVAILABLE"}, rows)
			return nil
		},
	}

	var accProduct int64
	accuracy := &cobra.Command{
		Use:   "accuracy",
		Short: "Per-model accuracy figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleForecasting); err != nil {
				return err
			}
			rows, err := app.forecasts.Accuracy(cmd.Context(), accProduct)
			if err != nil {
				return err
			}
			out := make([][]string, 0, len(rows))
			for _, r := range rows {
				out = append(out, []string{r.ModelType, fmt.Sprintf("%.2f", r.MAPE), fmt.Sprintf("%d", r.PeriodCount)})
			}
			table([]string{"MODEL", "MAPE", "PERIODS"}, out)
			return nil
		},
	}
	accuracy.Flags().Int64Var(&accProduct, "product", 0, "restrict to one product")

	var anomProduct int64
	anomalies := &cobra.Command{
		Use:   "anomalies",
		Short: "Flag demand history outliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleForecasting); err != nil {
				return err
			}
			items, err := app.forecasts.Anomalies(cmd.Context(), anomProduct)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, an := range items {
				rows = append(rows, []string{
					an.Period, an.ActualQty.String(), an.ZScore.String(),
					an.Severity, an.Direction, an.Action,
				})
			}
			table([]string{"PERIOD", "ACTUAL", "Z-SCORE", "SEVERITY", "DIRECTION", "ACTION"}, rows)
			return nil
		},
	}
	anomalies.Flags().Int64Var(&anomProduct, "product", 0, "product id")
	_ = anomalies.MarkFlagRequired("product")

	cmd.AddCommand(generate, results, models, accuracy, anomalies)
	return cmd
}
