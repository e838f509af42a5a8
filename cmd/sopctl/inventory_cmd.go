package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newInventoryCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Stocking positions",
	}

	var listOpts sopclient.InventoryListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleInventory); err != nil {
				return err
			}
			page, err := app.inventory.List(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, it := range page.Items {
				rows = append(rows, []string{
					itoa(it.ID), it.SKU, it.Location,
					it.OnHandQty.String(), it.AvailableQty.String(),
					it.DaysOfSupply.String(), it.Status,
				})
			}
			table([]string{"ID", "SKU", "LOCATION", "ON HAND", "AVAILABLE", "DAYS", "STATUS"}, rows)
			fmt.Printf("page %d/%d, %d total\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	list.Flags().IntVar(&listOpts.Page, "page", 1, "page number")
	list.Flags().IntVar(&listOpts.PageSize, "page-size", 20, "page size")
	list.Flags().StringVar(&listOpts.Status, "status", "", "filter by stock status")
	list.Flags().Int64Var(&listOpts.ProductID, "product", 0, "filter by product id")
	list.Flags().StringVar(&listOpts.Location, "location", "", "filter by location")

	health := &cobra.Command{
		Use:   "health",
		Short: "Aggregate stock health",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleInventory); err != nil {
				return err
			}
			h, err := app.inventory.Health(cmd.Context())
			if err != nil {
				return err
			}
			table([]string{"POSITIONS", "NORMAL", "LOW", "CRITICAL", "EXCESS", "VALUATION"}, [][]string{{
				fmt.Sprintf("%d", h.TotalPositions), fmt.Sprintf("%d", h.Normal),
				fmt.Sprintf("%d", h.Low), fmt.Sprintf("%d", h.Critical),
				fmt.Sprintf("%d", h.Excess), h.TotalValuation.String(),
			}})
			return nil
		},
	}

	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Positions at or below their thresholds",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleInventory); err != nil {
				return err
			}
			items, err := app.inventory.Alerts(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, al := range items {
				rows = append(rows, []string{
					itoa(al.ProductID), al.Location, al.Status,
					al.OnHandQty.String(), al.Threshold.String(), al.Message,
				})
			}
			table([]string{"PRODUCT", "LOCATION", "STATUS", "ON HAND", "THRESHOLD", "MESSAGE"}, rows)
			return nil
		},
	}

	var onHand, safetyStock, reorderPoint float64
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a position (status is recalculated)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermInventoryUpdate); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req sopclient.UpdateInventoryRequest
			if cmd.Flags().Changed("on-hand") {
				q := sopclient.Num(onHand)
				req.OnHandQty = &q
			}
			if cmd.Flags().Changed("safety-stock") {
				q := sopclient.Num(safetyStock)
				req.SafetyStock = &q
			}
			if cmd.Flags().Changed("reorder-point") {
				q := sopclient.Num(reorderPoint)
				req.ReorderPoint = &q
			}
			it, err := app.inventory.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Printf("Position %d updated, status %s\n", it.ID, it.Status)
			return nil
		},
	}
	update.Flags().Float64Var(&onHand, "on-hand", 0, "on hand quantity")
	update.Flags().Float64Var(&safetyStock, "safety-stock", 0, "safety stock level")
	update.Flags().Float64Var(&reorderPoint, "reorder-point", 0, "reorder point")

	cmd.AddCommand(list, health, alerts, update)
	return cmd
}
