package entity

// Product especializa Item (it_tipus = 'P'). No aporta campos escalares propios:
// su valor se deriva por completo de su lista de materiales (prod_item).
type Product struct {
	Item
}

// Validate fija el discriminador y delega en el Item embebido.
func (p *Product) Validate() error {
	p.Kind = KindProduct
	return p.Item.Validate()
}
