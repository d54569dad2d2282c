package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adomenech/cataleg/internal/domain"
)

func TestBOMEdgeValidate(t *testing.T) {
	t.Run("línea correcta", func(t *testing.T) {
		edge := BOMEdge{ProductCode: "PR-0001", ItemCode: "CM-0001", Quantity: 4}
		require.NoError(t, edge.Validate())
	})

	t.Run("clave incompleta", func(t *testing.T) {
		edge := BOMEdge{ProductCode: "PR-0001", ItemCode: "  ", Quantity: 1}
		assert.ErrorIs(t, edge.Validate(), domain.ErrInvalidInput)

		edge = BOMEdge{ProductCode: "", ItemCode: "CM-0001", Quantity: 1}
		assert.ErrorIs(t, edge.Validate(), domain.ErrInvalidInput)
	})

	t.Run("autocontención directa prohibida", func(t *testing.T) {
		edge := BOMEdge{ProductCode: "PR-0001", ItemCode: "PR-0001", Quantity: 1}
		assert.ErrorIs(t, edge.Validate(), domain.ErrInvalidInput)
	})

	t.Run("cantidad no positiva", func(t *testing.T) {
		edge := BOMEdge{ProductCode: "PR-0001", ItemCode: "CM-0001", Quantity: 0}
		assert.ErrorIs(t, edge.Validate(), domain.ErrInvalidInput)

		edge.Quantity = -3
		assert.ErrorIs(t, edge.Validate(), domain.ErrInvalidInput)
	})
}

func TestSupplierOfferValidate(t *testing.T) {
	t.Run("oferta correcta", func(t *testing.T) {
		o := SupplierOffer{ComponentCode: "CM-0001", SupplierCode: "PV-01", Price: decimal.NewFromFloat(12.50)}
		require.NoError(t, o.Validate())
	})

	t.Run("precio cero permitido", func(t *testing.T) {
		o := SupplierOffer{ComponentCode: "CM-0001", SupplierCode: "PV-01"}
		assert.NoError(t, o.Validate())
	})

	t.Run("clave incompleta", func(t *testing.T) {
		o := SupplierOffer{ComponentCode: "", SupplierCode: "PV-01"}
		assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput)
	})

	t.Run("precio negativo", func(t *testing.T) {
		o := SupplierOffer{ComponentCode: "CM-0001", SupplierCode: "PV-01", Price: decimal.NewFromInt(-5)}
		assert.ErrorIs(t, o.Validate(), domain.ErrInvalidInput)
	})
}
