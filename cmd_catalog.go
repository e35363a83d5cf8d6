package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"greenbloom/catalog"
	"greenbloom/models"
	"greenbloom/views"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the shop products",
	RunE: func(cmd *cobra.Command, args []string) error {
		category := models.ParseCategory(catalogCategory)
		if category != models.CategoryAll && !category.Valid() {
			return fmt.Errorf("unknown category %q", catalogCategory)
		}
		out := cmd.OutOrStdout()
		for _, p := range catalog.Filter(catalog.Products(), category) {
			fmt.Fprintf(out, "%-3d %-20s %-7s %8s\n", p.ID, p.Name, p.Category, views.Money(p.Price))
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "all", "Only show this category")
}
