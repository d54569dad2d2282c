package entity

import (
	"fmt"
	"strings"

	"github.com/adomenech/cataleg/internal/domain"
)

// ItemKind discrimina el tipo de entrada del catálogo (columna it_tipus).
type ItemKind string

const (
	KindComponent ItemKind = "C" // componente comprado a proveedores
	KindProduct   ItemKind = "P" // producto fabricado a partir de su BOM
)

// Valid indica si el discriminador es uno de los conocidos. Un valor fuera de
// rango en la BD es una anomalía de integridad, no un error fatal de lectura.
func (k ItemKind) Valid() bool {
	return k == KindComponent || k == KindProduct
}

// Item es la entrada abstracta del catálogo (tabla item, padre de component/producte).
// Code es inmutable una vez creado; la especialización es un rol, no contención.
type Item struct {
	Code        string
	Kind        ItemKind
	Name        string
	Description string
	Stock       int
	PhotoRef    string
}

// Validate aplica la política uniforme de validación: strings obligatorios no
// vacíos tras TrimSpace, stock no negativo y discriminador conocido.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Code) == "" {
		return fmt.Errorf("%w: código de item vacío", domain.ErrInvalidInput)
	}
	if !i.Kind.Valid() {
		return fmt.Errorf("%w: tipo de item desconocido %q", domain.ErrInvalidInput, string(i.Kind))
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: nombre de item vacío", domain.ErrInvalidInput)
	}
	if i.Stock < 0 {
		return fmt.Errorf("%w: stock negativo (%d)", domain.ErrInvalidInput, i.Stock)
	}
	return nil
}
