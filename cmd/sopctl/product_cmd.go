package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func newProductCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Planning catalog",
	}

	var listOpts sopclient.ProductListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleProducts); err != nil {
				return err
			}
			page, err := app.products.List(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(page.Items))
			for _, p := range page.Items {
				rows = append(rows, []string{
					itoa(p.ID), p.SKU, p.Name, p.ProductFamily,
					p.UnitCost.String(), p.SellingPrice.String(), p.Status,
				})
			}
			table([]string{"ID", "SKU", "NAME", "FAMILY", "COST", "PRICE", "STATUS"}, rows)
			fmt.Printf("page %d/%d, %d total\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	list.Flags().IntVar(&listOpts.Page, "page", 1, "page number")
	list.Flags().IntVar(&listOpts.PageSize, "page-size", 20, "page size")
	list.Flags().StringVar(&listOpts.Status, "status", "", "filter by status")
	list.Flags().Int64Var(&listOpts.CategoryID, "category", 0, "filter by category id")
	list.Flags().StringVar(&listOpts.Search, "search", "", "search SKU and name")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleProducts); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			table([]string{"FIELD", "VALUE"}, [][]string{
				{"ID", itoa(p.ID)},
				{"SKU", p.SKU},
				{"Name", p.Name},
				{"Family", p.ProductFamily},
				{"Unit", p.UnitOfMeasure},
				{"Cost", p.UnitCost.String()},
				{"Price", p.SellingPrice.String()},
				{"Lead time", fmt.Sprintf("%d days", p.LeadTimeDays)},
				{"Min order", fmt.Sprintf("%d", p.MinOrderQty)},
				{"Status", p.Status},
			})
			return nil
		},
	}

	var createReq sopclient.CreateProductRequest
	var cost, price float64
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a SKU",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermProductsManage); err != nil {
				return err
			}
			if cmd.Flags().Changed("cost") {
				n := sopclient.Num(cost)
				createReq.UnitCost = &n
			}
			if cmd.Flags().Changed("price") {
				n := sopclient.Num(price)
				createReq.SellingPrice = &n
			}
			p, err := app.products.Create(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("Created product %d (%s)\n", p.ID, p.SKU)
			return nil
		},
	}
	create.Flags().StringVar(&createReq.SKU, "sku", "", "SKU")
	create.Flags().StringVar(&createReq.Name, "name", "", "product name")
	create.Flags().StringVar(&createReq.ProductFamily, "family", "", "product family")
	create.Flags().StringVar(&createReq.UnitOfMeasure, "unit", "", "unit of measure")
	create.Flags().Float64Var(&cost, "cost", 0, "unit cost")
	create.Flags().Float64Var(&price, "price", 0, "selling price")
	create.Flags().IntVar(&createReq.LeadTimeDays, "lead-time", 0, "lead time in days")
	create.Flags().IntVar(&createReq.MinOrderQty, "min-order", 0, "minimum order quantity")
	_ = create.MarkFlagRequired("sku")
	_ = create.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Discontinue a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requirePermission(rbac.PermProductsManage); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Product %d discontinued\n", id)
			return nil
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List the category tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := *a
			if err := app.requireModule(rbac.ModuleProducts); err != nil {
				return err
			}
			cats, err := app.products.Categories(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				parent := ""
				if c.ParentID != nil {
					parent = itoa(*c.ParentID)
				}
				rows = append(rows, []string{itoa(c.ID), c.Name, fmt.Sprintf("%d", c.Level), parent})
			}
			table([]string{"ID", "NAME", "LEVEL", "PARENT"}, rows)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, del, categories)
	return cmd
}
