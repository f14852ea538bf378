// seed_afip genera el SQL que carga en pos_sequences los comprobantes de venta
// (facturas, notas de débito y de crédito A, B, C y E) de un punto de venta.
//
// Uso: go run ./cmd/seed_afip <pos_id> [tipos_comprobante.csv] > seed.sql
//
// El CSV (sentido;letra;codigo;descripcion, ISO-8859-1, como lo publica AFIP) es
// opcional; sin él se usa la tabla incorporada.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-pos-ar/pkg/afip"
)

var (
	seedDirections = []string{afip.DirectionOutInvoice, afip.DirectionOutDebitNote, afip.DirectionOutCreditNote}
	seedLetters    = []string{afip.LetterA, afip.LetterB, afip.LetterC, afip.LetterE}
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_afip <pos_id> [tipos_comprobante.csv]")
		os.Exit(2)
	}
	posID := os.Args[1]
	if _, err := uuid.Parse(posID); err != nil {
		fmt.Fprintf(os.Stderr, "pos_id inválido: %v\n", err)
		os.Exit(2)
	}

	table := afip.DefaultInvoiceTypeTable()
	if len(os.Args) > 2 {
		f, err := os.Open(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		table, err = afip.LoadInvoiceTypeTable(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
	}

	n, err := writeSeed(os.Stdout, posID, table, func() string { return uuid.New().String() })
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generadas %d secuencias para el punto de venta %s\n", n, posID)
}

// writeSeed escribe un INSERT por comprobante. El WHERE NOT EXISTS hace el script
// re-ejecutable: pos_sequences no tiene unique (pos_id, invoice_type).
func writeSeed(w io.Writer, posID string, table *afip.InvoiceTypeTable, newID func() string) (int, error) {
	var b strings.Builder
	b.WriteString("-- Secuencias de comprobantes AFIP de venta\n")
	fmt.Fprintf(&b, "-- Punto de venta %s\n\n", posID)

	n := 0
	for _, dir := range seedDirections {
		for _, letter := range seedLetters {
			it, ok := table.Lookup(dir, letter)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "INSERT INTO pos_sequences (id, pos_id, invoice_type, description)\n")
			fmt.Fprintf(&b, "SELECT '%s', '%s', '%s', '%s'\n", newID(), posID, escapeSQL(it.Code), escapeSQL(it.Description))
			fmt.Fprintf(&b, "WHERE NOT EXISTS (SELECT 1 FROM pos_sequences WHERE pos_id = '%s' AND invoice_type = '%s');\n",
				posID, escapeSQL(it.Code))
			n++
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return 0, err
	}
	return n, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
