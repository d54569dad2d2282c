package repository

import (
	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain/entity"
)

// ComponentRepository define el puerto de persistencia para la tabla component.
// Solo escribe la fila hija (cm_*): la fila item la escribe ItemRepository dentro
// de la misma transacción (ver CatalegService). cm_preu_mig nunca se escribe
// directamente salvo el 0 inicial en Create y vía RecomputeAveragePrice.
type ComponentRepository interface {
	Create(c *entity.Component) error
	// Update actualiza cm_um_codi y cm_codi_fabricant. No toca cm_preu_mig.
	Update(c *entity.Component) error
	Delete(code string) error
	FindByCode(code string) (*entity.Component, error)
	FindAll() ([]*entity.Component, error)
	FindPage(page, size int) ([]*entity.Component, error)
	FilterByCode(pattern string) ([]*entity.Component, error)
	FindByPriceRange(min, max decimal.Decimal) ([]*entity.Component, error)
	// RecomputeAveragePrice fija cm_preu_mig = media de prov_comp.pc_preu del
	// componente, o 0 si no tiene ofertas. Debe ejecutarse en la misma
	// transacción que la escritura de la oferta.
	RecomputeAveragePrice(code string) error
	Count() (int, error)
}
