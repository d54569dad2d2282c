package repository

import "github.com/adomenech/cataleg/internal/domain/entity"

// ItemRepository define el puerto de persistencia para la tabla padre item (DIP).
// Las operaciones de una sola fila devuelven domain.ErrNotFound cuando la clave
// no existe; los listados devuelven slice vacío, nunca error, cuando no hay filas.
type ItemRepository interface {
	Create(item *entity.Item) error
	// UpdateDescriptive actualiza it_nom, it_desc, it_stock e it_foto.
	// El código y el discriminador son inmutables.
	UpdateDescriptive(item *entity.Item) error
	// UpdateStock fija it_stock del item identificado por (código, tipo).
	UpdateStock(code string, kind entity.ItemKind, stock int) error
	Delete(code string, kind entity.ItemKind) error
	FindByCode(code string) (*entity.Item, error)
	FindAll() ([]*entity.Item, error)
	// FindPage pagina con page/size en base 1.
	FindPage(page, size int) ([]*entity.Item, error)
	// FilterByCode filtra por patrón de código, sin distinguir mayúsculas.
	// Patrón en blanco equivale a FindAll.
	FilterByCode(pattern string) ([]*entity.Item, error)
	// FilterByName filtra por patrón de nombre, sin distinguir mayúsculas ni
	// acentos (los nombres del catálogo llevan diacríticos).
	FilterByName(pattern string) ([]*entity.Item, error)
	Count() (int, error)
}
