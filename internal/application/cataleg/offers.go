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

// OfferService mantiene la invariante del precio medio: tras cada escritura
// confirmada sobre prov_comp, cm_preu_mig del componente es la media aritmética
// de sus ofertas vigentes (0 si no queda ninguna). En el sistema origen el
// recálculo lo hacía un trigger Oracle; aquí mutación y recálculo viajan en la
// misma transacción, expuestos como una sola operación para que nadie pueda
// olvidarse de la segunda mitad. El recálculo es síncrono: al volver la llamada
// el precio medio ya refleja la oferta, y ninguna transacción concurrente
// observa el estado intermedio.
type OfferService struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewOfferService construye el servicio de ofertas.
func NewOfferService(txRunner TxRunner, log *logger.Logger) *OfferService {
	return &OfferService{txRunner: txRunner, log: log}
}

// AddOffer inserta una oferta y recalcula el precio medio del componente.
// Falla con ErrInvalidInput (códigos vacíos, precio negativo), ErrDuplicate
// (el par ya existe) o ErrForeignKey (componente o proveedor inexistente).
func (s *OfferService) AddOffer(ctx context.Context, offer entity.SupplierOffer) error {
	if err := offer.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("oferta rechazada en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.ProductRepository,
		componentRepo repository.ComponentRepository,
		offerRepo repository.SupplierOfferRepository,
	) error {
		if err := offerRepo.Create(&offer); err != nil {
			return err
		}
		return componentRepo.RecomputeAveragePrice(offer.ComponentCode)
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("component", offer.ComponentCode).
			Str("proveidor", offer.SupplierCode).
			Msg("error insertando oferta")
		return fmt.Errorf("add offer: %w", err)
	}
	s.log.Info().
		Str("component", offer.ComponentCode).
		Str("proveidor", offer.SupplierCode).
		Str("preu", offer.Price.String()).
		Msg("oferta insertada y precio medio recalculado")
	return nil
}

// UpdateOfferPrice cambia el precio de una oferta existente y recalcula el
// precio medio. Falla con ErrNotFound si el par no existe.
func (s *OfferService) UpdateOfferPrice(ctx context.Context, componentCode, supplierCode string, price decimal.Decimal) error {
	if err := validateOfferKey(componentCode, supplierCode); err != nil {
		s.log.Warn().Err(err).Msg("actualización de oferta rechazada en validación")
		return err
	}
	if price.IsNegative() {
		err := fmt.Errorf("%w: precio negativo (%s)", domain.ErrInvalidInput, price)
		s.log.Warn().Err(err).Msg("actualización de oferta rechazada en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.ProductRepository,
		componentRepo repository.ComponentRepository,
		offerRepo repository.SupplierOfferRepository,
	) error {
		if err := offerRepo.UpdatePrice(componentCode, supplierCode, price); err != nil {
			return err
		}
		return componentRepo.RecomputeAveragePrice(componentCode)
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("component", componentCode).
			Str("proveidor", supplierCode).
			Msg("error actualizando oferta")
		return fmt.Errorf("update offer price: %w", err)
	}
	s.log.Info().
		Str("component", componentCode).
		Str("proveidor", supplierCode).
		Str("preu", price.String()).
		Msg("oferta actualizada y precio medio recalculado")
	return nil
}

// RemoveOffer elimina una oferta y recalcula el precio medio; al quitar la
// última oferta el componente vuelve a precio medio 0. Falla con ErrNotFound
// si el par no existe.
func (s *OfferService) RemoveOffer(ctx context.Context, componentCode, supplierCode string) error {
	if err := validateOfferKey(componentCode, supplierCode); err != nil {
		s.log.Warn().Err(err).Msg("borrado de oferta rechazado en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		_ repository.ProductRepository,
		componentRepo repository.ComponentRepository,
		offerRepo repository.SupplierOfferRepository,
	) error {
		if err := offerRepo.Delete(componentCode, supplierCode); err != nil {
			return err
		}
		return componentRepo.RecomputeAveragePrice(componentCode)
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("component", componentCode).
			Str("proveidor", supplierCode).
			Msg("error eliminando oferta")
		return fmt.Errorf("remove offer: %w", err)
	}
	s.log.Info().
		Str("component", componentCode).
		Str("proveidor", supplierCode).
		Msg("oferta eliminada y precio medio recalculado")
	return nil
}

func validateOfferKey(componentCode, supplierCode string) error {
	if strings.TrimSpace(componentCode) == "" || strings.TrimSpace(supplierCode) == "" {
		return fmt.Errorf("%w: clave compuesta de oferta incompleta (%q, %q)",
			domain.ErrInvalidInput, componentCode, supplierCode)
	}
	return nil
}
