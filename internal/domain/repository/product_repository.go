package repository

import "github.com/adomenech/cataleg/internal/domain/entity"

// ProductRepository define el puerto de persistencia para la tabla producte.
// Igual que ComponentRepository, solo escribe la fila hija; la fila item va
// aparte en la misma transacción.
type ProductRepository interface {
	Create(code string) error
	Delete(code string) error
	FindByCode(code string) (*entity.Product, error)
	FindAll() ([]*entity.Product, error)
	FindPage(page, size int) ([]*entity.Product, error)
	FilterByCode(pattern string) ([]*entity.Product, error)
	Count() (int, error)
}
