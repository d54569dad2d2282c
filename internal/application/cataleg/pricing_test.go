package cataleg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adomenech/cataleg/internal/application/cataleg"
	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
	"github.com/adomenech/cataleg/internal/infrastructure/memory"
	"github.com/adomenech/cataleg/pkg/logger"
)

// addOffer inserta una oferta a través del servicio, fallando el test si no entra.
func addOffer(t *testing.T, f *fixture, component, supplier, price string) {
	t.Helper()
	err := f.offers.AddOffer(context.Background(), entity.SupplierOffer{
		ComponentCode: component,
		SupplierCode:  supplier,
		Price:         decimal.RequireFromString(price),
	})
	require.NoError(t, err)
}

func addEdge(t *testing.T, f *fixture, product, item string, qty int) {
	t.Helper()
	err := f.catalog.AddBOMEdge(context.Background(), &entity.BOMEdge{
		ProductCode: product,
		ItemCode:    item,
		Quantity:    qty,
	})
	require.NoError(t, err)
}

func TestTotalPriceEmptyBOM(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.CreateProduct(context.Background(), newProduct("PR-BUIT", "Producte sense BOM")))

	total, err := f.pricing.TotalPrice(context.Background(), "PR-BUIT")
	require.NoError(t, err)
	requireDecimalEqual(t, "0", total)
}

func TestTotalPriceUnknownProduct(t *testing.T) {
	// Producto inexistente y BOM vacía son indistinguibles para el motor: 0 sin error.
	f := newFixture(t)

	total, err := f.pricing.TotalPrice(context.Background(), "PR-NO-EXISTEIX")
	require.NoError(t, err)
	requireDecimalEqual(t, "0", total)
}

func TestTotalPriceBlankCode(t *testing.T) {
	f := newFixture(t)

	_, err := f.pricing.TotalPrice(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTotalPriceRecursive(t *testing.T) {
	// PR-1 = 2×CM-1 (mitjana 5) + 1×PR-2; PR-2 = 5×CM-2 (mitjana 5).
	// Total esperado: 2×5 + 1×(5×5) = 35.
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.CreateComponent(ctx, newComponent("CM-1", "Cargol M8")))
	require.NoError(t, f.catalog.CreateComponent(ctx, newComponent("CM-2", "Femella M8")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-1", "Conjunt complet")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-2", "Subconjunt")))

	addOffer(t, f, "CM-1", "PV-01", "4")
	addOffer(t, f, "CM-1", "PV-02", "6") // mitjana CM-1 = 5
	addOffer(t, f, "CM-2", "PV-01", "5") // mitjana CM-2 = 5

	addEdge(t, f, "PR-1", "CM-1", 2)
	addEdge(t, f, "PR-1", "PR-2", 1)
	addEdge(t, f, "PR-2", "CM-2", 5)

	total, err := f.pricing.TotalPrice(ctx, "PR-1")
	require.NoError(t, err)
	requireDecimalEqual(t, "35", total)
}

func TestTotalPriceComponentWithoutOffers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.CreateComponent(ctx, newComponent("CM-1", "Junta tòrica")))
	require.NoError(t, f.catalog.CreateComponent(ctx, newComponent("CM-2", "Molla")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-1", "Vàlvula")))

	addOffer(t, f, "CM-2", "PV-01", "10")
	addEdge(t, f, "PR-1", "CM-1", 100) // sin ofertas: aporta 0
	addEdge(t, f, "PR-1", "CM-2", 3)

	total, err := f.pricing.TotalPrice(ctx, "PR-1")
	require.NoError(t, err)
	requireDecimalEqual(t, "30", total)
}

func TestTotalPriceDiamond(t *testing.T) {
	// Dos ramas que comparten subproducto no son un ciclo: PR-1 contiene PR-2 y
	// PR-3, y ambos contienen CM-1. El componente cuenta por cada rama.
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.CreateComponent(ctx, newComponent("CM-1", "Rodament")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-1", "Pare")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-2", "Branca esquerra")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-3", "Branca dreta")))

	addOffer(t, f, "CM-1", "PV-01", "7")
	addEdge(t, f, "PR-1", "PR-2", 1)
	addEdge(t, f, "PR-1", "PR-3", 1)
	addEdge(t, f, "PR-2", "CM-1", 2)
	addEdge(t, f, "PR-3", "CM-1", 3)

	total, err := f.pricing.TotalPrice(ctx, "PR-1")
	require.NoError(t, err)
	requireDecimalEqual(t, "35", total)
}

func TestTotalPriceCycle(t *testing.T) {
	// Ciclo transitivo PR-1 → PR-2 → PR-1: error inmediato, nunca recursión infinita.
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-1", "A")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-2", "B")))
	addEdge(t, f, "PR-1", "PR-2", 1)
	addEdge(t, f, "PR-2", "PR-1", 1)

	_, err := f.pricing.TotalPrice(ctx, "PR-1")
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestTotalPriceUnknownKind(t *testing.T) {
	// Una fila con discriminador fuera de rango (corrupción de datos) aporta 0
	// sin tumbar el cálculo del resto de la BOM.
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.CreateComponent(ctx, newComponent("CM-1", "Passador")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-1", "Eix muntat")))
	addOffer(t, f, "CM-1", "PV-01", "2")
	addEdge(t, f, "PR-1", "CM-1", 4)

	// Fila corrupta insertada por debajo del servicio (la validación la impediría).
	require.NoError(t, memory.NewItemRepository(f.store).Create(&entity.Item{
		Code: "IT-RARO", Kind: "X", Name: "fila corrupta",
	}))
	require.NoError(t, memory.NewBOMRepository(f.store).AddEdge(&entity.BOMEdge{
		ProductCode: "PR-1", ItemCode: "IT-RARO", Quantity: 9,
	}))

	total, err := f.pricing.TotalPrice(ctx, "PR-1")
	require.NoError(t, err)
	requireDecimalEqual(t, "8", total)
}

// failingBOMRepo falla FindPricedEdges para un código concreto y delega el resto.
type failingBOMRepo struct {
	repository.BOMRepository
	failOn string
}

func (r failingBOMRepo) FindPricedEdges(productCode string) ([]repository.PricedEdge, error) {
	if productCode == r.failOn {
		return nil, errors.New("connexió perduda")
	}
	return r.BOMRepository.FindPricedEdges(productCode)
}

func TestTotalPriceStorageErrorPropagates(t *testing.T) {
	// Un fallo de lectura a cualquier profundidad invalida todo el recorrido:
	// jamás un 0 silencioso a medias.
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalog.CreateComponent(ctx, newComponent("CM-1", "Brida")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-1", "Pare")))
	require.NoError(t, f.catalog.CreateProduct(ctx, newProduct("PR-2", "Fill")))
	addOffer(t, f, "CM-1", "PV-01", "3")
	addEdge(t, f, "PR-1", "CM-1", 2)
	addEdge(t, f, "PR-1", "PR-2", 1)

	pricing := cataleg.NewPricingService(failingBOMRepo{
		BOMRepository: memory.NewBOMRepository(f.store),
		failOn:        "PR-2",
	}, logger.Nop())

	total, err := pricing.TotalPrice(ctx, "PR-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connexió perduda")
	requireDecimalEqual(t, "0", total)
}
