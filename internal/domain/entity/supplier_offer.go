package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
)

// SupplierOffer es el precio de un proveedor para un componente (tabla prov_comp).
// PK compuesta (pc_cm_codi, pc_pv_codi). Cada escritura sobre esta relación
// obliga a recalcular cm_preu_mig del componente en la misma transacción.
type SupplierOffer struct {
	ComponentCode string // pc_cm_codi
	SupplierCode  string // pc_pv_codi
	Price         decimal.Decimal
}

// Validate rechaza códigos vacíos y precios negativos.
func (o *SupplierOffer) Validate() error {
	if strings.TrimSpace(o.ComponentCode) == "" || strings.TrimSpace(o.SupplierCode) == "" {
		return fmt.Errorf("%w: clave compuesta de oferta incompleta (%q, %q)",
			domain.ErrInvalidInput, o.ComponentCode, o.SupplierCode)
	}
	if o.Price.IsNegative() {
		return fmt.Errorf("%w: precio negativo (%s)", domain.ErrInvalidInput, o.Price)
	}
	return nil
}
