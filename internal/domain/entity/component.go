package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
)

// Component especializa Item (it_tipus = 'C').
// AveragePrice (cm_preu_mig) es un campo derivado: media de los precios de
// prov_comp para este componente. Lo mantiene OfferService dentro de la misma
// transacción que escribe la oferta; la aplicación nunca lo asigna directamente
// salvo como 0 inicial al crear.
type Component struct {
	Item
	UnitMeasureCode  string // cm_um_codi, FK a unitat_mesura
	ManufacturerCode string // cm_codi_fabricant
	AveragePrice     decimal.Decimal
}

// Validate comprueba el Item embebido y los campos propios del componente.
func (c *Component) Validate() error {
	c.Kind = KindComponent
	if err := c.Item.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.UnitMeasureCode) == "" {
		return fmt.Errorf("%w: unidad de medida vacía", domain.ErrInvalidInput)
	}
	if c.AveragePrice.IsNegative() {
		return fmt.Errorf("%w: precio medio negativo (%s)", domain.ErrInvalidInput, c.AveragePrice)
	}
	return nil
}
