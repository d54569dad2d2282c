package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/adomenech/cataleg/internal/domain"
	"github.com/adomenech/cataleg/internal/domain/entity"
	"github.com/adomenech/cataleg/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo implementación de ComponentRepository sobre PostgreSQL (usable con pool o tx).
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador de componentes. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const componentSelect = `
	SELECT i.it_codi, i.it_tipus, i.it_nom, i.it_desc, i.it_stock, i.it_foto,
	       c.cm_um_codi, c.cm_codi_fabricant, c.cm_preu_mig
	FROM item i
	JOIN component c ON i.it_codi = c.cm_codi`

// Create inserta la fila component. cm_preu_mig arranca en 0: solo las ofertas
// lo mueven, vía RecomputeAveragePrice.
func (r *ComponentRepo) Create(c *entity.Component) error {
	query := `
		INSERT INTO component (cm_codi, cm_um_codi, cm_codi_fabricant, cm_preu_mig)
		VALUES ($1, $2, $3, 0)`
	_, err := r.q.Exec(context.Background(), query,
		c.Code, c.UnitMeasureCode, c.ManufacturerCode,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// Update actualiza unidad de medida y fabricante. No toca cm_preu_mig.
func (r *ComponentRepo) Update(c *entity.Component) error {
	query := `UPDATE component SET cm_um_codi = $2, cm_codi_fabricant = $3 WHERE cm_codi = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.Code, c.UnitMeasureCode, c.ManufacturerCode)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("update component: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila component (la fila item la borra ItemRepository en la misma tx).
func (r *ComponentRepo) Delete(code string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM component WHERE cm_codi = $1`, code)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("delete component: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByCode obtiene un componente con sus campos de item.
func (r *ComponentRepo) FindByCode(code string) (*entity.Component, error) {
	query := componentSelect + ` WHERE c.cm_codi = $1`
	c, err := scanComponent(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return c, nil
}

// FindAll lista todos los componentes ordenados por código.
func (r *ComponentRepo) FindAll() ([]*entity.Component, error) {
	return r.queryComponents(componentSelect + ` ORDER BY c.cm_codi`)
}

// FindPage lista componentes paginados (page/size en base 1).
func (r *ComponentRepo) FindPage(page, size int) ([]*entity.Component, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("%w: paginación inválida (page=%d, size=%d)",
			domain.ErrInvalidInput, page, size)
	}
	query := componentSelect + ` ORDER BY c.cm_codi LIMIT $1 OFFSET $2`
	return r.queryComponents(query, size, (page-1)*size)
}

// FilterByCode filtra por patrón de código sin distinguir mayúsculas.
func (r *ComponentRepo) FilterByCode(pattern string) ([]*entity.Component, error) {
	if strings.TrimSpace(pattern) == "" {
		return r.FindAll()
	}
	query := componentSelect + ` WHERE c.cm_codi ILIKE $1 ORDER BY c.cm_codi`
	return r.queryComponents(query, "%"+pattern+"%")
}

// FindByPriceRange lista componentes con precio medio dentro del rango, ordenados por precio.
func (r *ComponentRepo) FindByPriceRange(min, max decimal.Decimal) ([]*entity.Component, error) {
	query := componentSelect + ` WHERE c.cm_preu_mig BETWEEN $1 AND $2 ORDER BY c.cm_preu_mig`
	return r.queryComponents(query, min, max)
}

// RecomputeAveragePrice fija cm_preu_mig = AVG(pc_preu) de las ofertas vigentes,
// o 0 si no queda ninguna. En el sistema origen esto lo hacía un trigger; aquí
// debe ejecutarse dentro de la misma transacción que escribe prov_comp.
func (r *ComponentRepo) RecomputeAveragePrice(code string) error {
	query := `
		UPDATE component
		SET cm_preu_mig = COALESCE(
			(SELECT AVG(pc_preu) FROM prov_comp WHERE pc_cm_codi = $1), 0)
		WHERE cm_codi = $1`
	cmd, err := r.q.Exec(context.Background(), query, code)
	if err != nil {
		return fmt.Errorf("recompute average price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count cuenta los componentes.
func (r *ComponentRepo) Count() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM component`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count components: %w", err)
	}
	return total, nil
}

func (r *ComponentRepo) queryComponents(query string, args ...any) ([]*entity.Component, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()
	var list []*entity.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanComponent(row pgx.Row) (*entity.Component, error) {
	var (
		c          entity.Component
		kind       string
		desc, foto *string
		fabricant  *string
	)
	if err := row.Scan(&c.Code, &kind, &c.Name, &desc, &c.Stock, &foto,
		&c.UnitMeasureCode, &fabricant, &c.AveragePrice); err != nil {
		return nil, err
	}
	c.Kind = entity.ItemKind(kind)
	if desc != nil {
		c.Description = *desc
	}
	if foto != nil {
		c.PhotoRef = *foto
	}
	if fabricant != nil {
		c.ManufacturerCode = *fabricant
	}
	return &c, nil
}
