package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adomenech/cataleg/internal/infrastructure/postgres"
)

var ofertesCmd = &cobra.Command{
	Use:   "ofertes <cm_codi>",
	Short: "Muestra las ofertas de proveedores de un componente y su precio medio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cancel, pool, _, err := setup()
		if err != nil {
			return err
		}
		defer cancel()
		defer pool.Close()

		component, err := postgres.NewComponentRepository(pool).FindByCode(args[0])
		if err != nil {
			return err
		}
		offers, err := postgres.NewSupplierOfferRepository(pool).FindByComponent(args[0])
		if err != nil {
			return err
		}

		for _, offer := range offers {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", offer.SupplierCode, offer.Price.StringFixed(2))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "precio medio: %s (%d ofertas)\n",
			component.AveragePrice.StringFixed(2), len(offers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ofertesCmd)
}
