package cataleg

import (
	"context"
	"fmt"
	"strings"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
	"github.com/adomenech/cataleg/pkg/logger"
)

// CatalegService gestiona el ciclo de vida de componentes y productos, cuyas
// representaciones están partidas en un par de tablas padre/hija (item +
// component o item + producte). Los pares se escriben bajo transacción: o las
// dos filas o ninguna, así que ningún lector concurrente ve un par a medias.
// También gestiona las líneas de BOM (escrituras de una sola sentencia).
type CatalegService struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	bomRepo  repository.BOMRepository
	log      *logger.Logger
}

// NewCatalegService construye el servicio de catálogo. itemRepo y bomRepo van
// atados al pool (operaciones de una sola sentencia); el resto pasa por txRunner.
func NewCatalegService(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	bomRepo repository.BOMRepository,
	log *logger.Logger,
) *CatalegService {
	return &CatalegService{txRunner: txRunner, itemRepo: itemRepo, bomRepo: bomRepo, log: log}
}

// CreateComponent inserta el par item + component de forma atómica.
// El precio medio arranca en 0: solo las ofertas lo mueven.
func (s *CatalegService) CreateComponent(ctx context.Context, c *entity.Component) error {
	if err := c.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("componente rechazado en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.ProductRepository,
		componentRepo repository.ComponentRepository,
		_ repository.SupplierOfferRepository,
	) error {
		if err := itemRepo.Create(&c.Item); err != nil {
			return err
		}
		return componentRepo.Create(c)
	})
	if err != nil {
		s.log.Error().Err(err).Str("component", c.Code).Msg("error insertando componente")
		return fmt.Errorf("create component: %w", err)
	}
	s.log.Info().Str("component", c.Code).Msg("componente insertado")
	return nil
}

// UpdateComponent actualiza los campos descriptivos del item y los propios del
// componente en la misma transacción. Nunca toca cm_preu_mig.
func (s *CatalegService) UpdateComponent(ctx context.Context, c *entity.Component) error {
	if err := c.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("componente rechazado en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.ProductRepository,
		componentRepo repository.ComponentRepository,
		_ repository.SupplierOfferRepository,
	) error {
		if err := itemRepo.UpdateDescriptive(&c.Item); err != nil {
			return err
		}
		return componentRepo.Update(c)
	})
	if err != nil {
		s.log.Error().Err(err).Str("component", c.Code).Msg("error actualizando componente")
		return fmt.Errorf("update component: %w", err)
	}
	s.log.Info().Str("component", c.Code).Msg("componente actualizado")
	return nil
}

// DeleteComponent elimina el par component + item de forma atómica. Falla con
// ErrForeignKey si el componente aparece en alguna BOM o conserva ofertas.
func (s *CatalegService) DeleteComponent(ctx context.Context, code string) error {
	if err := validateCode(code, "componente"); err != nil {
		s.log.Warn().Err(err).Msg("borrado de componente rechazado en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.ProductRepository,
		componentRepo repository.ComponentRepository,
		_ repository.SupplierOfferRepository,
	) error {
		if err := componentRepo.Delete(code); err != nil {
			return err
		}
		return itemRepo.Delete(code, entity.KindComponent)
	})
	if err != nil {
		s.log.Error().Err(err).Str("component", code).Msg("error eliminando componente")
		return fmt.Errorf("delete component: %w", err)
	}
	s.log.Info().Str("component", code).Msg("componente eliminado")
	return nil
}

// CreateProduct inserta el par item + producte de forma atómica.
func (s *CatalegService) CreateProduct(ctx context.Context, p *entity.Product) error {
	if err := p.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("producto rechazado en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		productRepo repository.ProductRepository,
		_ repository.ComponentRepository,
		_ repository.SupplierOfferRepository,
	) error {
		if err := itemRepo.Create(&p.Item); err != nil {
			return err
		}
		return productRepo.Create(p.Code)
	})
	if err != nil {
		s.log.Error().Err(err).Str("producte", p.Code).Msg("error insertando producto")
		return fmt.Errorf("create product: %w", err)
	}
	s.log.Info().Str("producte", p.Code).Msg("producto insertado")
	return nil
}

// UpdateProduct actualiza los campos descriptivos del item. Producte no tiene
// campos propios, así que basta una sentencia (sin transacción explícita).
func (s *CatalegService) UpdateProduct(ctx context.Context, p *entity.Product) error {
	if err := p.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("producto rechazado en validación")
		return err
	}
	if err := s.itemRepo.UpdateDescriptive(&p.Item); err != nil {
		s.log.Error().Err(err).Str("producte", p.Code).Msg("error actualizando producto")
		return fmt.Errorf("update product: %w", err)
	}
	s.log.Info().Str("producte", p.Code).Msg("producto actualizado")
	return nil
}

// DeleteProduct elimina el par producte + item de forma atómica. Falla con
// ErrForeignKey si el producto aparece en alguna BOM (propia o ajena).
func (s *CatalegService) DeleteProduct(ctx context.Context, code string) error {
	if err := validateCode(code, "producto"); err != nil {
		s.log.Warn().Err(err).Msg("borrado de producto rechazado en validación")
		return err
	}
	err := s.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		productRepo repository.ProductRepository,
		_ repository.ComponentRepository,
		_ repository.SupplierOfferRepository,
	) error {
		if err := productRepo.Delete(code); err != nil {
			return err
		}
		return itemRepo.Delete(code, entity.KindProduct)
	})
	if err != nil {
		s.log.Error().Err(err).Str("producte", code).Msg("error eliminando producto")
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Info().Str("producte", code).Msg("producto eliminado")
	return nil
}

// AddBOMEdge añade un item (componente o subproducto) a la BOM de un producto.
func (s *CatalegService) AddBOMEdge(ctx context.Context, edge *entity.BOMEdge) error {
	if err := edge.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("línea de BOM rechazada en validación")
		return err
	}
	if err := s.bomRepo.AddEdge(edge); err != nil {
		s.log.Error().Err(err).
			Str("producte", edge.ProductCode).
			Str("item", edge.ItemCode).
			Msg("error insertando línea de BOM")
		return fmt.Errorf("add bom edge: %w", err)
	}
	s.log.Info().
		Str("producte", edge.ProductCode).
		Str("item", edge.ItemCode).
		Int("quantitat", edge.Quantity).
		Msg("línea de BOM insertada")
	return nil
}

// UpdateBOMQuantity cambia la cantidad de una línea de BOM existente.
func (s *CatalegService) UpdateBOMQuantity(ctx context.Context, edge *entity.BOMEdge) error {
	if err := edge.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("línea de BOM rechazada en validación")
		return err
	}
	if err := s.bomRepo.UpdateQuantity(edge); err != nil {
		s.log.Error().Err(err).
			Str("producte", edge.ProductCode).
			Str("item", edge.ItemCode).
			Msg("error actualizando línea de BOM")
		return fmt.Errorf("update bom quantity: %w", err)
	}
	s.log.Info().
		Str("producte", edge.ProductCode).
		Str("item", edge.ItemCode).
		Int("quantitat", edge.Quantity).
		Msg("línea de BOM actualizada")
	return nil
}

// RemoveBOMEdge quita un item de la BOM de un producto.
func (s *CatalegService) RemoveBOMEdge(ctx context.Context, productCode, itemCode string) error {
	if strings.TrimSpace(productCode) == "" || strings.TrimSpace(itemCode) == "" {
		err := fmt.Errorf("%w: clave compuesta de BOM incompleta (%q, %q)",
			domain.ErrInvalidInput, productCode, itemCode)
		s.log.Warn().Err(err).Msg("borrado de línea de BOM rechazado en validación")
		return err
	}
	if err := s.bomRepo.RemoveEdge(productCode, itemCode); err != nil {
		s.log.Error().Err(err).
			Str("producte", productCode).
			Str("item", itemCode).
			Msg("error eliminando línea de BOM")
		return fmt.Errorf("remove bom edge: %w", err)
	}
	s.log.Info().
		Str("producte", productCode).
		Str("item", itemCode).
		Msg("línea de BOM eliminada")
	return nil
}

func validateCode(code, what string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: código de %s vacío", domain.ErrInvalidInput, what)
	}
	return nil
}
