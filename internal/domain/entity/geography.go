package entity

// Province (tabla provincia). Datos maestros de solo lectura.
type Province struct {
	Code string // pv_codi
	Name string // pv_nom
}

// Municipality (tabla municipi). PK compuesta (mu_pv_codi, mu_num).
type Municipality struct {
	ProvinceCode string // mu_pv_codi
	Number       string // mu_num
	Name         string // mu_nom
}
