package repository

import (
	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain/entity"
)

// SupplierOfferRepository define el puerto de persistencia para prov_comp.
// Toda escritura por este puerto debe ir seguida, en la misma transacción, de
// ComponentRepository.RecomputeAveragePrice del componente afectado. La única
// vía sancionada para esa secuencia es OfferService.
type SupplierOfferRepository interface {
	Create(o *entity.SupplierOffer) error
	UpdatePrice(componentCode, supplierCode string, price decimal.Decimal) error
	Delete(componentCode, supplierCode string) error
	Find(componentCode, supplierCode string) (*entity.SupplierOffer, error)
	FindByComponent(componentCode string) ([]*entity.SupplierOffer, error)
	FindBySupplier(supplierCode string) ([]*entity.SupplierOffer, error)
}
