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

var _ repository.UnitMeasureRepository = (*UnitMeasureRepo)(nil)

// UnitMeasureRepo implementación de solo lectura de UnitMeasureRepository sobre PostgreSQL.
type UnitMeasureRepo struct {
	q Querier
}

// NewUnitMeasureRepository construye el adaptador de unidades de medida. Pasar pool o tx (Querier).
func NewUnitMeasureRepository(q Querier) *UnitMeasureRepo {
	return &UnitMeasureRepo{q: q}
}

// FindByCode obtiene una unidad de medida por código.
func (r *UnitMeasureRepo) FindByCode(code string) (*entity.UnitMeasure, error) {
	var u entity.UnitMeasure
	err := r.q.QueryRow(context.Background(),
		`SELECT um_codi, um_nom FROM unitat_mesura WHERE um_codi = $1`, code).
		Scan(&u.Code, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get unitat_mesura: %w", err)
	}
	return &u, nil
}

// FindAll lista todas las unidades de medida ordenadas por código.
func (r *UnitMeasureRepo) FindAll() ([]*entity.UnitMeasure, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT um_codi, um_nom FROM unitat_mesura ORDER BY um_codi`)
	if err != nil {
		return nil, fmt.Errorf("list unitats_mesura: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitMeasure
	for rows.Next() {
		var u entity.UnitMeasure
		if err := rows.Scan(&u.Code, &u.Name); err != nil {
			return nil, fmt.Errorf("scan unitat_mesura: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
