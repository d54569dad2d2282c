package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BOMRepository sobre PostgreSQL (usable con pool o tx).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de líneas de BOM. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// AddEdge inserta una línea de BOM.
func (r *BOMRepo) AddEdge(e *entity.BOMEdge) error {
	query := `
		INSERT INTO prod_item (pi_pr_codi, pi_it_codi, quantitat)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, e.ProductCode, e.ItemCode, e.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("insert prod_item: %w", err)
	}
	return nil
}

// UpdateQuantity cambia la cantidad de una línea existente.
func (r *BOMRepo) UpdateQuantity(e *entity.BOMEdge) error {
	query := `
		UPDATE prod_item SET quantitat = $3
		WHERE pi_pr_codi = $1 AND pi_it_codi = $2`
	cmd, err := r.q.Exec(context.Background(), query, e.ProductCode, e.ItemCode, e.Quantity)
	if err != nil {
		return fmt.Errorf("update prod_item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveEdge elimina una línea de BOM por clave compuesta.
func (r *BOMRepo) RemoveEdge(productCode, itemCode string) error {
	query := `DELETE FROM prod_item WHERE pi_pr_codi = $1 AND pi_it_codi = $2`
	cmd, err := r.q.Exec(context.Background(), query, productCode, itemCode)
	if err != nil {
		return fmt.Errorf("delete prod_item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindEdge obtiene una línea por clave compuesta.
func (r *BOMRepo) FindEdge(productCode, itemCode string) (*entity.BOMEdge, error) {
	query := `
		SELECT pi_pr_codi, pi_it_codi, quantitat
		FROM prod_item WHERE pi_pr_codi = $1 AND pi_it_codi = $2`
	var e entity.BOMEdge
	err := r.q.QueryRow(context.Background(), query, productCode, itemCode).
		Scan(&e.ProductCode, &e.ItemCode, &e.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get prod_item: %w", err)
	}
	return &e, nil
}

// FindByProduct lista las líneas de un producto ordenadas por item hijo.
func (r *BOMRepo) FindByProduct(productCode string) ([]*entity.BOMEdge, error) {
	query := `
		SELECT pi_pr_codi, pi_it_codi, quantitat
		FROM prod_item WHERE pi_pr_codi = $1
		ORDER BY pi_it_codi`
	return r.queryEdges(query, productCode)
}

// FindAll lista todas las líneas de BOM.
func (r *BOMRepo) FindAll() ([]*entity.BOMEdge, error) {
	query := `
		SELECT pi_pr_codi, pi_it_codi, quantitat
		FROM prod_item
		ORDER BY pi_pr_codi, pi_it_codi`
	return r.queryEdges(query)
}

// FindPricedEdges resuelve en una sola consulta las líneas del producto con el
// tipo del hijo y, vía LEFT JOIN, su precio medio (NULL si no es componente).
// Es la consulta que alimenta cada nivel de la recursión del motor de precios.
func (r *BOMRepo) FindPricedEdges(productCode string) ([]repository.PricedEdge, error) {
	query := `
		SELECT pi.pi_it_codi, pi.quantitat, i.it_tipus, c.cm_preu_mig
		FROM prod_item pi
		JOIN item i ON pi.pi_it_codi = i.it_codi
		LEFT JOIN component c ON i.it_codi = c.cm_codi
		WHERE pi.pi_pr_codi = $1
		ORDER BY pi.pi_it_codi`
	rows, err := r.q.Query(context.Background(), query, productCode)
	if err != nil {
		return nil, fmt.Errorf("list priced edges: %w", err)
	}
	defer rows.Close()
	var list []repository.PricedEdge
	for rows.Next() {
		var (
			e    repository.PricedEdge
			kind string
		)
		if err := rows.Scan(&e.ItemCode, &e.Quantity, &kind, &e.AveragePrice); err != nil {
			return nil, fmt.Errorf("scan priced edge: %w", err)
		}
		e.Kind = entity.ItemKind(kind)
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *BOMRepo) queryEdges(query string, args ...any) ([]*entity.BOMEdge, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prod_item: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMEdge
	for rows.Next() {
		var e entity.BOMEdge
		if err := rows.Scan(&e.ProductCode, &e.ItemCode, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan prod_item: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
