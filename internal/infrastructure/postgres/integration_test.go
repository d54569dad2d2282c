//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/adomenech/cataleg/internal/application/cataleg"
	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/infrastructure/postgres"
	"github.com/adomenech/cataleg/pkg/config"
	"github.com/adomenech/cataleg/pkg/logger"
)

// setupDB levanta un PostgreSQL efímero, aplica el esquema y carga los datos
// maestros mínimos. Ejecutar con: go test -tags integration ./...
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("cataleg_test"),
		tcpostgres.WithUsername("cataleg"),
		tcpostgres.WithPassword("cataleg"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../database/schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	seed := `
		INSERT INTO provincia (pv_codi, pv_nom) VALUES ('08', 'Barcelona');
		INSERT INTO municipi (mu_pv_codi, mu_num, mu_nom) VALUES ('08', '0019', 'Barcelona');
		INSERT INTO unitat_mesura (um_codi, um_nom) VALUES ('UN', 'unitat');
		INSERT INTO proveidor (pv_codi, pv_cif, pv_rao_social, pv_mu_pr_codi, pv_mu_num)
			VALUES ('PV-01', 'A08001111', 'Recanvis Valls SL', '08', '0019'),
			       ('PV-02', 'A08002222', 'Subministraments Gironès SA', '08', '0019');
	`
	_, err = pool.Exec(ctx, seed)
	require.NoError(t, err)

	return pool
}

type services struct {
	catalog *cataleg.CatalegService
	offers  *cataleg.OfferService
	pricing *cataleg.PricingService
}

func newServices(pool *pgxpool.Pool) services {
	log := logger.Nop()
	txRunner := postgres.NewTxRunner(pool)
	return services{
		catalog: cataleg.NewCatalegService(txRunner, postgres.NewItemRepository(pool), postgres.NewBOMRepository(pool), log),
		offers:  cataleg.NewOfferService(txRunner, log),
		pricing: cataleg.NewPricingService(postgres.NewBOMRepository(pool), log),
	}
}

func component(code, name string) *entity.Component {
	return &entity.Component{
		Item:            entity.Item{Code: code, Kind: entity.KindComponent, Name: name},
		UnitMeasureCode: "UN",
	}
}

func product(code, name string) *entity.Product {
	return &entity.Product{Item: entity.Item{Code: code, Kind: entity.KindProduct, Name: name}}
}

func TestCatalogAgainstPostgres(t *testing.T) {
	pool := setupDB(t)
	svc := newServices(pool)
	ctx := context.Background()
	componentRepo := postgres.NewComponentRepository(pool)

	// Par item + component con precio medio inicial 0.
	require.NoError(t, svc.catalog.CreateComponent(ctx, component("CM-1", "Vàlvula de retenció")))
	require.NoError(t, svc.catalog.CreateComponent(ctx, component("CM-2", "Politja dentada")))
	stored, err := componentRepo.FindByCode("CM-1")
	require.NoError(t, err)
	assert.True(t, stored.AveragePrice.IsZero())

	// Ofertas: el precio medio se recalcula en la misma transacción.
	require.NoError(t, svc.offers.AddOffer(ctx, entity.SupplierOffer{
		ComponentCode: "CM-1", SupplierCode: "PV-01", Price: decimal.RequireFromString("4"),
	}))
	require.NoError(t, svc.offers.AddOffer(ctx, entity.SupplierOffer{
		ComponentCode: "CM-1", SupplierCode: "PV-02", Price: decimal.RequireFromString("6"),
	}))
	require.NoError(t, svc.offers.AddOffer(ctx, entity.SupplierOffer{
		ComponentCode: "CM-2", SupplierCode: "PV-01", Price: decimal.RequireFromString("5"),
	}))
	stored, err = componentRepo.FindByCode("CM-1")
	require.NoError(t, err)
	assert.True(t, stored.AveragePrice.Equal(decimal.NewFromInt(5)),
		"esperaba 5, obtenido %s", stored.AveragePrice)

	// BOM recursiva: PR-1 = 2×CM-1 + 1×PR-2; PR-2 = 5×CM-2. Total 35.
	require.NoError(t, svc.catalog.CreateProduct(ctx, product("PR-1", "Conjunt complet")))
	require.NoError(t, svc.catalog.CreateProduct(ctx, product("PR-2", "Subconjunt")))
	for _, edge := range []entity.BOMEdge{
		{ProductCode: "PR-1", ItemCode: "CM-1", Quantity: 2},
		{ProductCode: "PR-1", ItemCode: "PR-2", Quantity: 1},
		{ProductCode: "PR-2", ItemCode: "CM-2", Quantity: 5},
	} {
		e := edge
		require.NoError(t, svc.catalog.AddBOMEdge(ctx, &e))
	}
	total, err := svc.pricing.TotalPrice(ctx, "PR-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(35)), "esperaba 35, obtenido %s", total)

	// Producto sin BOM: 0 sin error.
	require.NoError(t, svc.catalog.CreateProduct(ctx, product("PR-3", "Producte buit")))
	total, err = svc.pricing.TotalPrice(ctx, "PR-3")
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	// Ciclo transitivo PR-2 → PR-1 (PR-1 ya contiene PR-2): el CHECK del esquema
	// solo impide la autocontención directa, el ciclo lo corta el motor.
	edge := entity.BOMEdge{ProductCode: "PR-2", ItemCode: "PR-1", Quantity: 1}
	require.NoError(t, svc.catalog.AddBOMEdge(ctx, &edge))
	_, err = svc.pricing.TotalPrice(ctx, "PR-1")
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
	require.NoError(t, svc.catalog.RemoveBOMEdge(ctx, "PR-2", "PR-1"))

	// Quitar la última oferta deja el precio medio en 0, no en NULL.
	require.NoError(t, svc.offers.RemoveOffer(ctx, "CM-2", "PV-01"))
	stored, err = componentRepo.FindByCode("CM-2")
	require.NoError(t, err)
	assert.True(t, stored.AveragePrice.IsZero())
}

func TestTransactionalRollbackAgainstPostgres(t *testing.T) {
	pool := setupDB(t)
	svc := newServices(pool)
	ctx := context.Background()
	itemRepo := postgres.NewItemRepository(pool)

	// La unidad de medida no existe: la fila item insertada en la misma
	// transacción debe revertirse con el fallo de la fila component.
	bad := component("CM-KO", "Peça impossible")
	bad.UnitMeasureCode = "KG"
	err := svc.catalog.CreateComponent(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrForeignKey)

	_, err = itemRepo.FindByCode("CM-KO")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemFiltersAgainstPostgres(t *testing.T) {
	pool := setupDB(t)
	svc := newServices(pool)
	ctx := context.Background()
	itemRepo := postgres.NewItemRepository(pool)

	require.NoError(t, svc.catalog.CreateComponent(ctx, component("CM-1", "Vàlvula de retenció")))
	require.NoError(t, svc.catalog.CreateComponent(ctx, component("CM-2", "Politja dentada")))
	require.NoError(t, svc.catalog.CreateProduct(ctx, product("PR-1", "Transmissió completa")))

	t.Run("por nombre sin acentos", func(t *testing.T) {
		found, err := itemRepo.FilterByName("valvula")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "CM-1", found[0].Code)
	})

	t.Run("por código sin mayúsculas", func(t *testing.T) {
		found, err := itemRepo.FilterByCode("cm-")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("paginado", func(t *testing.T) {
		page1, err := itemRepo.FindPage(1, 2)
		require.NoError(t, err)
		assert.Len(t, page1, 2)
		page2, err := itemRepo.FindPage(2, 2)
		require.NoError(t, err)
		assert.Len(t, page2, 1)
	})

	t.Run("count", func(t *testing.T) {
		n, err := itemRepo.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}
