package cataleg

import (
	"context"

	"github.com/adomenech/cataleg/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para los pares
// item/producte e item/component y para la secuencia oferta + recálculo
// del precio medio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		productRepo repository.ProductRepository,
		componentRepo repository.ComponentRepository,
		offerRepo repository.SupplierOfferRepository,
	) error) error
}
