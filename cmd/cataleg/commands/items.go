package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/infrastructure/postgres"
)

var (
	itemsPage int
	itemsSize int
	itemsCodi string
	itemsNom  string
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Lista items del catálogo (paginado o filtrado)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cancel, pool, _, err := setup()
		if err != nil {
			return err
		}
		defer cancel()
		defer pool.Close()

		repo := postgres.NewItemRepository(pool)

		var items []*entity.Item
		switch {
		case itemsCodi != "":
			items, err = repo.FilterByCode(itemsCodi)
		case itemsNom != "":
			items, err = repo.FilterByName(itemsNom)
		default:
			items, err = repo.FindPage(itemsPage, itemsSize)
		}
		if err != nil {
			return err
		}

		for _, item := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s %-30s stock=%d\n",
				item.Code, string(item.Kind), item.Name, item.Stock)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "(%d items)\n", len(items))
		return nil
	},
}

func init() {
	itemsCmd.Flags().IntVar(&itemsPage, "page", 1, "página (base 1)")
	itemsCmd.Flags().IntVar(&itemsSize, "size", 20, "items por página")
	itemsCmd.Flags().StringVar(&itemsCodi, "codi", "", "filtrar por patrón de código")
	itemsCmd.Flags().StringVar(&itemsNom, "nom", "", "filtrar por patrón de nombre (ignora acentos)")
	rootCmd.AddCommand(itemsCmd)
}
