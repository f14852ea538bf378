// Package afip contiene las reglas de dominio para emitir comprobantes AFIP
// (Argentina): letra según condición frente al IVA, concepto y período de servicio.
package afip

import "github.com/jhoicas/ventas-pos-ar/pkg/afip"

// ClassifyInvoiceLetter determina la letra del comprobante (A, B, C o E) para
// una venta según la condición de IVA de la empresa emisora y del cliente.
//
// Si la empresa es responsable inscripta y la condición del cliente es
// desconocida, la clasificación queda indeterminada (ok = false) y el caller no
// debe buscar secuencia.
func ClassifyInvoiceLetter(companyCondition, partyCondition string, partyHasForeignID, partyHasLocalVATID bool) (letter string, ok bool) {
	if companyCondition == afip.IVAResponsableInscripto {
		switch {
		case partyCondition == "":
			return "", false
		case partyCondition == afip.IVAResponsableInscripto:
			return afip.LetterA, true
		case partyCondition == afip.IVAConsumidorFinal:
			return afip.LetterB, true
		case partyHasLocalVATID:
			return afip.LetterB, true
		default:
			return afip.LetterE, true
		}
	}

	letter = afip.LetterC
	if partyHasForeignID {
		letter = afip.LetterE
	}
	return letter, true
}
