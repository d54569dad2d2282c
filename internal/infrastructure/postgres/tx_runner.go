package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adomenech/cataleg/internal/application/cataleg"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

// Ensure TxRunner implements cataleg.TxRunner.
var _ cataleg.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Garantiza que los pares item/producte e item/component nunca queden a medias
// y que el recálculo de cm_preu_mig viaje con la escritura de la oferta.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	productRepo repository.ProductRepository,
	componentRepo repository.ComponentRepository,
	offerRepo repository.SupplierOfferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	productRepo := NewProductRepository(tx)
	componentRepo := NewComponentRepository(tx)
	offerRepo := NewSupplierOfferRepository(tx)

	if err := fn(itemRepo, productRepo, componentRepo, offerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
