package cataleg

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
	"github.com/adomenech/cataleg/pkg/logger"
)

// PricingService calcula el coste total de fabricación de un producto
// recorriendo recursivamente su lista de materiales: los componentes aportan
// cantidad × precio medio, los subproductos cantidad × su propio total.
// Solo lee; no toma locks, así que pueden correr invocaciones concurrentes
// sin coordinación.
type PricingService struct {
	bomRepo repository.BOMRepository
	log     *logger.Logger
}

// NewPricingService construye el motor de precios.
func NewPricingService(bomRepo repository.BOMRepository, log *logger.Logger) *PricingService {
	return &PricingService{bomRepo: bomRepo, log: log}
}

// TotalPrice devuelve el coste total del producto indicado.
//
// Contrato:
//   - producto sin líneas de BOM (o inexistente): 0 sin error; quien necesite
//     distinguir "no existe" de "BOM vacía" debe consultar antes FindByCode.
//   - hijo con discriminador desconocido: aporta 0 y se registra la anomalía
//     (violación de integridad recuperable, nunca fatal).
//   - componente sin ofertas: precio unitario 0.
//   - ciclo transitivo en la BOM: ErrCycleDetected con el código reincidente.
//   - fallo de almacenamiento en cualquier nivel: se propaga como error para
//     todo el recorrido, nunca un 0 silencioso. Así un 0 significa siempre
//     "BOM vacía o sin precios", no "algo falló a medias".
//
// La acumulación es decimal sin redondeos intermedios.
func (s *PricingService) TotalPrice(ctx context.Context, productCode string) (decimal.Decimal, error) {
	code := strings.TrimSpace(productCode)
	if code == "" {
		return decimal.Zero, fmt.Errorf("%w: código de producto vacío", domain.ErrInvalidInput)
	}

	total, err := s.totalPrice(code, make(map[string]bool))
	if err != nil {
		s.log.Error().Err(err).Str("producte", code).Msg("error calculando precio total")
		return decimal.Zero, err
	}
	s.log.Debug().Str("producte", code).Str("preu_total", total.String()).Msg("precio total calculado")
	return total, nil
}

// totalPrice hace el descenso recursivo. visited contiene los códigos de la
// cadena de llamadas actual: un reencuentro es un ciclo y se corta en seco.
// Se borra al salir para permitir diamantes (dos ramas que comparten un
// subproducto son legales).
func (s *PricingService) totalPrice(code string, visited map[string]bool) (decimal.Decimal, error) {
	if visited[code] {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrCycleDetected, code)
	}
	visited[code] = true
	defer delete(visited, code)

	edges, err := s.bomRepo.FindPricedEdges(code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("preu total de %s: %w", code, err)
	}

	total := decimal.Zero
	for _, edge := range edges {
		var unit decimal.Decimal
		switch edge.Kind {
		case entity.KindComponent:
			// Componente nunca ofertado: cm_preu_mig NULL o 0 → aporta 0.
			if edge.AveragePrice.Valid {
				unit = edge.AveragePrice.Decimal
			}
		case entity.KindProduct:
			sub, err := s.totalPrice(edge.ItemCode, visited)
			if err != nil {
				return decimal.Zero, err
			}
			unit = sub
		default:
			s.log.Warn().
				Str("producte", code).
				Str("item", edge.ItemCode).
				Str("it_tipus", string(edge.Kind)).
				Msg("item con tipo desconocido en la BOM, aporta 0")
			continue
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(edge.Quantity))))
	}
	return total, nil
}
