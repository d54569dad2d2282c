package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adomenech/cataleg/internal/application/cataleg"
	"github.com/adomenech/cataleg/internal/infrastructure/postgres"
)

var preuCmd = &cobra.Command{
	Use:   "preu <pr_codi>",
	Short: "Calcula el precio total de fabricación de un producto",
	Long: `Recorre recursivamente la lista de materiales del producto sumando
cantidad × precio medio para los componentes y cantidad × precio total para
los subproductos. Un producto sin BOM (o inexistente) vale 0.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, pool, log, err := setup()
		if err != nil {
			return err
		}
		defer cancel()
		defer pool.Close()

		pricing := cataleg.NewPricingService(postgres.NewBOMRepository(pool), log)
		total, err := pricing.TotalPrice(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], total.StringFixed(2))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preuCmd)
}
