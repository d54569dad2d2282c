package repository

import (
	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain/entity"
)

// PricedEdge es la proyección que consume el motor de precios: una línea de BOM
// con el discriminador del item hijo y, si es componente, su precio medio.
// AveragePrice es NULL cuando el hijo no tiene fila en component.
type PricedEdge struct {
	ItemCode     string
	Quantity     int
	Kind         entity.ItemKind
	AveragePrice decimal.NullDecimal
}

// BOMRepository define el puerto de persistencia para la tabla prod_item.
type BOMRepository interface {
	AddEdge(e *entity.BOMEdge) error
	// UpdateQuantity cambia la cantidad de una línea existente.
	UpdateQuantity(e *entity.BOMEdge) error
	RemoveEdge(productCode, itemCode string) error
	FindEdge(productCode, itemCode string) (*entity.BOMEdge, error)
	FindByProduct(productCode string) ([]*entity.BOMEdge, error)
	FindAll() ([]*entity.BOMEdge, error)
	// FindPricedEdges devuelve las líneas del producto con tipo y precio medio
	// del hijo resueltos en una sola consulta (un viaje por nivel de recursión).
	FindPricedEdges(productCode string) ([]PricedEdge, error)
}
