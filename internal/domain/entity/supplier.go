package entity

// Supplier es un proveedor de componentes (tabla proveidor).
// Datos maestros: solo lectura desde la aplicación tras la carga inicial.
type Supplier struct {
	Code            string // pv_codi
	TaxID           string // pv_cif, único
	LegalName       string // pv_rao_social
	BillingAddress  string // pv_lin_adre_fac
	ContactPerson   string // pv_persona_contacte
	ContactPhone    string // pv_telef_contacte
	ProvinceCode    string // pv_mu_pr_codi, FK compuesta a municipi
	MunicipalityNum string // pv_mu_num
}
