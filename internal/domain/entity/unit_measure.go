package entity

// UnitMeasure es una unidad de medida de componentes (tabla unitat_mesura).
type UnitMeasure struct {
	Code string // um_codi
	Name string // um_nom
}
