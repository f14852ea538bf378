// Package afip contiene catálogos y validaciones de AFIP (Argentina) usados por
// facturación electrónica: condiciones frente al IVA, tipos de comprobante,
// conceptos WSFEv1 y CUIT.
package afip

// =============================================================================
// Condiciones frente al IVA (RG 1415)
// =============================================================================

const (
	IVAResponsableInscripto = "responsable_inscripto"
	IVAConsumidorFinal      = "consumidor_final"
	IVAExento               = "exento"
	IVAMonotributo          = "monotributo"
	IVANoAlcanzado          = "no_alcanzado"
	IVAClienteExterior      = "cliente_exterior"
)

// ValidIVAConditions condiciones de IVA aceptadas para empresas y clientes.
var ValidIVAConditions = map[string]bool{
	IVAResponsableInscripto: true,
	IVAConsumidorFinal:      true,
	IVAExento:               true,
	IVAMonotributo:          true,
	IVANoAlcanzado:          true,
	IVAClienteExterior:      true,
}

// =============================================================================
// Letras de comprobante
// =============================================================================

const (
	LetterA = "A"
	LetterB = "B"
	LetterC = "C"
	LetterE = "E" // exportación / sujetos del exterior
)

// =============================================================================
// Tipo de producto (clasifica el concepto del comprobante)
// =============================================================================

const (
	ProductTypeGoods   = "goods"
	ProductTypeService = "service"
	ProductTypeAssets  = "assets"
)

// ValidProductTypes tipos de producto aceptados.
var ValidProductTypes = map[string]bool{
	ProductTypeGoods:   true,
	ProductTypeService: true,
	ProductTypeAssets:  true,
}

// IVAConditionLabel texto impreso en el comprobante para la condición de IVA.
func IVAConditionLabel(condition string) string {
	switch condition {
	case IVAResponsableInscripto:
		return "IVA Responsable Inscripto"
	case IVAConsumidorFinal:
		return "Consumidor Final"
	case IVAExento:
		return "IVA Sujeto Exento"
	case IVAMonotributo:
		return "Responsable Monotributo"
	case IVANoAlcanzado:
		return "IVA No Alcanzado"
	case IVAClienteExterior:
		return "Cliente del Exterior"
	default:
		return ""
	}
}

// IVAConditionID código CondicionIVAReceptorId de WSFEv1 (RG 5616). 0 = sin código.
func IVAConditionID(condition string) int {
	switch condition {
	case IVAResponsableInscripto:
		return 1
	case IVAExento:
		return 4
	case IVAConsumidorFinal:
		return 5
	case IVAMonotributo:
		return 6
	case IVAClienteExterior:
		return 9
	case IVANoAlcanzado:
		return 15
	default:
		return 0
	}
}

// =============================================================================
// Concepto WSFEv1 (FECAEDetRequest/Concepto)
// =============================================================================

const (
	ConceptUndetermined = ""
	ConceptGoods        = "1" // Productos
	ConceptServices     = "2" // Servicios
	ConceptMixed        = "3" // Productos y Servicios
)

// RequiresServicePeriod indica si el concepto exige FchServDesde/FchServHasta.
func RequiresServicePeriod(concept string) bool {
	return concept == ConceptServices || concept == ConceptMixed
}

// ConceptDescription descripción legible del concepto.
func ConceptDescription(concept string) string {
	switch concept {
	case ConceptGoods:
		return "Productos"
	case ConceptServices:
		return "Servicios"
	case ConceptMixed:
		return "Productos y Servicios"
	default:
		return ""
	}
}

// =============================================================================
// Sentido del comprobante
// =============================================================================

const (
	DirectionOutInvoice    = "out_invoice"
	DirectionOutCreditNote = "out_credit_note"
	DirectionOutDebitNote  = "out_debit_note"
	DirectionInInvoice     = "in_invoice"
	DirectionInCreditNote  = "in_credit_note"
)

// =============================================================================
// Ambientes WSFE
// =============================================================================

const (
	EnvironmentHomologacion = "homologacion"
	EnvironmentProduccion   = "produccion"
)
