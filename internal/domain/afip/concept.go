package afip

import "github.com/jhoicas/ventas-pos-ar/pkg/afip"

// ResolveConcept devuelve el concepto WSFEv1 a partir de los tipos de producto
// de las líneas de la venta. Una línea sin producto se pasa como "" y no suma.
func ResolveConcept(productTypes []string) string {
	var goods, services bool
	for _, t := range productTypes {
		switch t {
		case afip.ProductTypeGoods:
			goods = true
		case afip.ProductTypeService:
			services = true
		}
	}

	switch {
	case goods && services:
		return afip.ConceptMixed
	case goods:
		return afip.ConceptGoods
	case services:
		return afip.ConceptServices
	default:
		return afip.ConceptUndetermined
	}
}
