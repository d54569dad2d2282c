package entity

import (
	"fmt"
	"strings"

	"github.com/adomenech/cataleg/internal/domain"
)

// BOMEdge es una línea de la lista de materiales (tabla prod_item):
// el producto ProductCode contiene Quantity unidades del item ItemCode.
// PK compuesta (pi_pr_codi, pi_it_codi).
type BOMEdge struct {
	ProductCode string // pi_pr_codi
	ItemCode    string // pi_it_codi, puede ser componente o subproducto
	Quantity    int    // quantitat, siempre > 0
}

// Validate rechaza códigos vacíos, autocontención directa y cantidades no positivas.
// La autocontención directa no impide ciclos transitivos; esos los corta el
// motor de precios con su conjunto de visitados.
func (e *BOMEdge) Validate() error {
	parent := strings.TrimSpace(e.ProductCode)
	child := strings.TrimSpace(e.ItemCode)
	if parent == "" || child == "" {
		return fmt.Errorf("%w: clave compuesta de BOM incompleta (%q, %q)",
			domain.ErrInvalidInput, e.ProductCode, e.ItemCode)
	}
	if parent == child {
		return fmt.Errorf("%w: un producto no puede contenerse a sí mismo (%s)",
			domain.ErrInvalidInput, parent)
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser > 0 (actual %d)",
			domain.ErrInvalidInput, e.Quantity)
	}
	return nil
}
