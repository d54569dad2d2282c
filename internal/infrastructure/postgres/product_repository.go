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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT i.it_codi, i.it_tipus, i.it_nom, i.it_desc, i.it_stock, i.it_foto
	FROM item i
	JOIN producte p ON i.it_codi = p.pr_codi`

// Create inserta la fila producte (la fila item va aparte, en la misma tx).
func (r *ProductRepo) Create(code string) error {
	_, err := r.q.Exec(context.Background(), `INSERT INTO producte (pr_codi) VALUES ($1)`, code)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("insert producte: %w", err)
	}
	return nil
}

// Delete elimina la fila producte. Falla con ErrForeignKey si el producto
// aparece en alguna línea de BOM.
func (r *ProductRepo) Delete(code string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM producte WHERE pr_codi = $1`, code)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("delete producte: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByCode obtiene un producto con sus campos de item.
func (r *ProductRepo) FindByCode(code string) (*entity.Product, error) {
	query := productSelect + ` WHERE p.pr_codi = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get producte: %w", err)
	}
	return p, nil
}

// FindAll lista todos los productos ordenados por código.
func (r *ProductRepo) FindAll() ([]*entity.Product, error) {
	return r.queryProducts(productSelect + ` ORDER BY p.pr_codi`)
}

// FindPage lista productos paginados (page/size en base 1).
func (r *ProductRepo) FindPage(page, size int) ([]*entity.Product, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: paginación inválida (page=%d, size=%d)",
			domain.ErrInvalidInput, page, size)
	}
	query := productSelect + ` ORDER BY p.pr_codi LIMIT $1 OFFSET $2`
	return r.queryProducts(query, size, (page-1)*size)
}

// FilterByCode filtra por patrón de código sin distinguir mayúsculas.
func (r *ProductRepo) FilterByCode(pattern string) ([]*entity.Product, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	query := productSelect + ` WHERE p.pr_codi ILIKE $1 ORDER BY p.pr_codi`
	return r.queryProducts(query, "%"+pattern+"%")
}

// Count cuenta los productos.
func (r *ProductRepo) Count() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM producte`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count productes: %w", err)
	}
	return total, nil
}

func (r *ProductRepo) queryProducts(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producte: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p          entity.Product
		kind       string
		desc, foto *string
	)
	if err := row.Scan(&p.Code, &kind, &p.Name, &desc, &p.Stock, &foto); err != nil {
		return nil, err
	}
	p.Kind = entity.ItemKind(kind)
	if desc != nil {
		p.Description = *desc
	}
	if foto != nil {
		p.PhotoRef = *foto
	}
	return &p, nil
}
