package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = "it_codi, it_tipus, it_nom, it_desc, it_stock, it_foto"

// Create inserta la fila padre de un componente o producto.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO item (it_codi, it_tipus, it_nom, it_desc, it_stock, it_foto)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.Code, string(item.Kind), item.Name, item.Description, item.Stock, item.PhotoRef,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateDescriptive actualiza los campos descriptivos de un item. Código y tipo
// son inmutables; el filtro por it_tipus evita que un producto pise un componente
// de mismo código (no debería pasar, pero el origen también lo filtraba).
func (r *ItemRepo) UpdateDescriptive(item *entity.Item) error {
	query := `
		UPDATE item SET it_nom = $2, it_desc = $3, it_stock = $4, it_foto = $5
		WHERE it_codi = $1 AND it_tipus = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		item.Code, item.Name, item.Description, item.Stock, item.PhotoRef, string(item.Kind),
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock de un item existente.
func (r *ItemRepo) UpdateStock(code string, kind entity.ItemKind, stock int) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock negativo (%d)", domain.ErrInvalidInput, stock)
	}
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE item SET it_stock = $3 WHERE it_codi = $1 AND it_tipus = $2`,
		code, string(kind), stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila padre. Falla con ErrForeignKey si quedan filas
// dependientes (BOM u ofertas) referenciando el item.
func (r *ItemRepo) Delete(code string, kind entity.ItemKind) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM item WHERE it_codi = $1 AND it_tipus = $2`, code, string(kind))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByCode obtiene un item por código, con su discriminador.
func (r *ItemRepo) FindByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM item WHERE it_codi = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// FindAll lista todos los items ordenados por código.
func (r *ItemRepo) FindAll() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM item ORDER BY it_codi`
	return r.queryItems(query)
}

// FindPage lista items paginados (page/size en base 1).
func (r *ItemRepo) FindPage(page, size int) ([]*entity.Item, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: paginación inválida (page=%d, size=%d)",
			domain.ErrInvalidInput, page, size)
	}
	query := `SELECT ` + itemColumns + ` FROM item ORDER BY it_codi LIMIT $1 OFFSET $2`
	return r.queryItems(query, size, (page-1)*size)
}

// FilterByCode filtra por patrón de código sin distinguir mayúsculas.
// Patrón en blanco equivale a FindAll (comportamiento heredado del origen).
func (r *ItemRepo) FilterByCode(pattern string) ([]*entity.Item, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	query := `SELECT ` + itemColumns + ` FROM item WHERE it_codi ILIKE $1 ORDER BY it_codi`
	return r.queryItems(query, "%"+pattern+"%")
}

// FilterByName filtra por patrón de nombre sin distinguir mayúsculas ni
// acentos. Requiere la extensión unaccent (la crea database/schema.sql).
func (r *ItemRepo) FilterByName(pattern string) ([]*entity.Item, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	query := `SELECT ` + itemColumns + ` FROM item
		WHERE unaccent(lower(it_nom)) LIKE unaccent(lower($1)) ORDER BY it_codi`
	return r.queryItems(query, "%"+pattern+"%")
}

// Count cuenta los items del catálogo.
func (r *ItemRepo) Count() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM item`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return total, nil
}

func (r *ItemRepo) queryItems(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		i    entity.Item
		kind string
		desc *string
		foto *string
	)
	if err := row.Scan(&i.Code, &kind, &i.Name, &desc, &i.Stock, &foto); err != nil {
		return nil, err
	}
	i.Kind = entity.ItemKind(kind)
	if desc != nil {
		i.Description = *desc
	}
	if foto != nil {
		i.PhotoRef = *foto
	}
	return &i, nil
}
