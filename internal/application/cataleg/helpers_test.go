package cataleg_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/adomenech/cataleg/internal/application/cataleg"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/infrastructure/memory"
	"github.com/adomenech/cataleg/pkg/logger"
)

// fixture monta los servicios de aplicación sobre el almacén en memoria con los
// datos maestros mínimos (una unidad de medida y tres proveedores).
type fixture struct {
	store   *memory.Store
	catalog *cataleg.CatalegService
	offers  *cataleg.OfferService
	pricing *cataleg.PricingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	store.SeedUnitMeasure(entity.UnitMeasure{Code: "UN", Name: "unitat"})
	store.SeedSupplier(entity.Supplier{Code: "PV-01", TaxID: "A08001111", LegalName: "Recanvis Valls SL"})
	store.SeedSupplier(entity.Supplier{Code: "PV-02", TaxID: "A08002222", LegalName: "Subministraments Gironès SA"})
	store.SeedSupplier(entity.Supplier{Code: "PV-03", TaxID: "A08003333", LegalName: "Industrial Bages SL"})

	log := logger.Nop()
	txRunner := memory.NewTxRunner(store)
	return &fixture{
		store:   store,
		catalog: cataleg.NewCatalegService(txRunner, memory.NewItemRepository(store), memory.NewBOMRepository(store), log),
		offers:  cataleg.NewOfferService(txRunner, log),
		pricing: cataleg.NewPricingService(memory.NewBOMRepository(store), log),
	}
}

func newComponent(code, name string) *entity.Component {
	return &entity.Component{
		Item:            entity.Item{Code: code, Kind: entity.KindComponent, Name: name, Stock: 0},
		UnitMeasureCode: "UN",
	}
}

func newProduct(code, name string) *entity.Product {
	return &entity.Product{
		Item: entity.Item{Code: code, Kind: entity.KindProduct, Name: name, Stock: 0},
	}
}

// averagePrice lee cm_preu_mig directamente del repositorio de componentes.
func (f *fixture) averagePrice(t *testing.T, code string) decimal.Decimal {
	t.Helper()
	c, err := memory.NewComponentRepository(f.store).FindByCode(code)
	require.NoError(t, err)
	return c.AveragePrice
}

// requireDecimalEqual compara decimales por valor, no por representación.
func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)),
		"esperaba %s, obtenido %s", want, got)
}
