package memory

import (
	"context"

	"github.com/adomenech/cataleg/internal/application/cataleg"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ cataleg.TxRunner = (*TxRunner)(nil)

// TxRunner implementa el puerto de transacciones sobre el Store con
// instantáneas: copia el estado mutable antes de ejecutar el callback y lo
// repone entero si falla. Da la misma semántica todo-o-nada que el TxRunner
// PostgreSQL, suficiente para los tests de atomicidad.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma una instantánea, ejecuta fn con vistas sobre el mismo Store y
// restaura la instantánea si fn devuelve error.
func (r *TxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	productRepo repository.ProductRepository,
	componentRepo repository.ComponentRepository,
	offerRepo repository.SupplierOfferRepository,
) error) error {
	snap := r.s.takeSnapshot()
	err := fn(
		NewItemRepository(r.s),
		NewProductRepository(r.s),
		NewComponentRepository(r.s),
		NewSupplierOfferRepository(r.s),
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
