package cataleg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
	"github.com/adomenech/cataleg/internal/infrastructure/memory"
)

func newOfferFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.catalog.CreateComponent(context.Background(), newComponent("CM-1", "Coixinet")))
	return f
}

func TestAddOfferRecomputesAverage(t *testing.T) {
	f := newOfferFixture(t)

	// Sin ofertas el precio medio arranca en 0.
	requireDecimalEqual(t, "0", f.averagePrice(t, "CM-1"))

	addOffer(t, f, "CM-1", "PV-01", "10")
	requireDecimalEqual(t, "10", f.averagePrice(t, "CM-1"))

	addOffer(t, f, "CM-1", "PV-02", "8")
	requireDecimalEqual(t, "9", f.averagePrice(t, "CM-1"))

	// La oferta quedó persistida tal cual.
	offer, err := memory.NewSupplierOfferRepository(f.store).Find("CM-1", "PV-02")
	require.NoError(t, err)
	requireDecimalEqual(t, "8", offer.Price)
}

func TestUpdateOfferPriceRecomputesAverage(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	addOffer(t, f, "CM-1", "PV-01", "10")
	addOffer(t, f, "CM-1", "PV-02", "8")

	require.NoError(t, f.offers.UpdateOfferPrice(ctx, "CM-1", "PV-01", decimal.RequireFromString("4")))
	requireDecimalEqual(t, "6", f.averagePrice(t, "CM-1"))
}

func TestUpdateOfferPriceNotFound(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	addOffer(t, f, "CM-1", "PV-01", "10")

	// Par inexistente: error y precio medio intacto.
	err := f.offers.UpdateOfferPrice(ctx, "CM-1", "PV-03", decimal.NewFromInt(99))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	requireDecimalEqual(t, "10", f.averagePrice(t, "CM-1"))
}

func TestRemoveOfferRecomputesAverage(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	addOffer(t, f, "CM-1", "PV-01", "10")
	addOffer(t, f, "CM-1", "PV-02", "8")

	require.NoError(t, f.offers.RemoveOffer(ctx, "CM-1", "PV-01"))
	requireDecimalEqual(t, "8", f.averagePrice(t, "CM-1"))

	// Al quitar la última oferta el componente vuelve a 0, no a NULL ni al último valor.
	require.NoError(t, f.offers.RemoveOffer(ctx, "CM-1", "PV-02"))
	requireDecimalEqual(t, "0", f.averagePrice(t, "CM-1"))
}

func TestRemoveOfferNotFound(t *testing.T) {
	f := newOfferFixture(t)

	err := f.offers.RemoveOffer(context.Background(), "CM-1", "PV-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddOfferValidation(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	t.Run("precio negativo", func(t *testing.T) {
		err := f.offers.AddOffer(ctx, entity.SupplierOffer{
			ComponentCode: "CM-1", SupplierCode: "PV-01", Price: decimal.NewFromInt(-1),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("clave incompleta", func(t *testing.T) {
		err := f.offers.AddOffer(ctx, entity.SupplierOffer{ComponentCode: "CM-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("precio negativo en actualización", func(t *testing.T) {
		err := f.offers.UpdateOfferPrice(ctx, "CM-1", "PV-01", decimal.NewFromInt(-5))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAddOfferForeignKey(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	t.Run("proveedor inexistente", func(t *testing.T) {
		err := f.offers.AddOffer(ctx, entity.SupplierOffer{
			ComponentCode: "CM-1", SupplierCode: "PV-99", Price: decimal.NewFromInt(5),
		})
		assert.ErrorIs(t, err, domain.ErrForeignKey)
		requireDecimalEqual(t, "0", f.averagePrice(t, "CM-1"))
	})

	t.Run("componente inexistente", func(t *testing.T) {
		err := f.offers.AddOffer(ctx, entity.SupplierOffer{
			ComponentCode: "CM-99", SupplierCode: "PV-01", Price: decimal.NewFromInt(5),
		})
		assert.ErrorIs(t, err, domain.ErrForeignKey)
	})
}

func TestAddOfferDuplicate(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	addOffer(t, f, "CM-1", "PV-01", "10")

	err := f.offers.AddOffer(ctx, entity.SupplierOffer{
		ComponentCode: "CM-1", SupplierCode: "PV-01", Price: decimal.NewFromInt(20),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	// Ni la oferta ni el precio medio se movieron.
	requireDecimalEqual(t, "10", f.averagePrice(t, "CM-1"))
	offer, findErr := memory.NewSupplierOfferRepository(f.store).Find("CM-1", "PV-01")
	require.NoError(t, findErr)
	requireDecimalEqual(t, "10", offer.Price)
}

func TestOfferWriteRollsBackWithRecompute(t *testing.T) {
	// Si algo falla después de escribir la oferta pero antes de confirmar, la
	// transacción revierte también la oferta: nunca queda una oferta visible
	// con un precio medio que no la refleja.
	f := newOfferFixture(t)
	runner := memory.NewTxRunner(f.store)

	err := runner.Run(context.Background(), func(
		_ repository.ItemRepository,
		_ repository.ProductRepository,
		_ repository.ComponentRepository,
		offerRepo repository.SupplierOfferRepository,
	) error {
		require.NoError(t, offerRepo.Create(&entity.SupplierOffer{
			ComponentCode: "CM-1", SupplierCode: "PV-01", Price: decimal.NewFromInt(10),
		}))
		return errors.New("fallo simulado tras escribir la oferta")
	})
	require.Error(t, err)

	_, findErr := memory.NewSupplierOfferRepository(f.store).Find("CM-1", "PV-01")
	assert.ErrorIs(t, findErr, domain.ErrNotFound)
	requireDecimalEqual(t, "0", f.averagePrice(t, "CM-1"))
}
