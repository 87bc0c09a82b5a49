// seed genera un script SQL para poblar el catálogo de productos a partir
// del listado de precios del distribuidor (CSV separado por ';', codificado
// en ISO-8859-1 como lo exporta el ERP del proveedor).
//
// Columnas esperadas: nombre;fabricante;codigo_hsn;tasa_impuesto;precio_venta;nivel_reorden
//
// Uso: go run ./cmd/seed [ruta/listado.csv]
// Por defecto busca listado_precios.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Namespace fijo para derivar UUIDs estables por nombre de producto,
// de modo que re-ejecutar el seed actualice en lugar de duplicar.
var productNamespace = uuid.MustParse("8f1a2f60-1f4b-4c0a-9a33-5b86e1a94d10")

type row struct {
	name         string
	manufacturer string
	hsnCode      string
	taxRate      string
	retailPrice  string
	reorderLevel string
}

func main() {
	csvPath := "listado_precios.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El ERP exporta en ISO-8859-1; convertimos a UTF-8 al vuelo.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 6

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []row
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue // cabecera
		}
		r := row{
			name:         strings.TrimSpace(rec[0]),
			manufacturer: strings.TrimSpace(rec[1]),
			hsnCode:      strings.TrimSpace(rec[2]),
			taxRate:      strings.TrimSpace(rec[3]),
			retailPrice:  strings.TrimSpace(rec[4]),
			reorderLevel: strings.TrimSpace(rec[5]),
		}
		if r.name == "" {
			continue
		}
		if r.taxRate == "" {
			r.taxRate = "0"
		}
		if r.retailPrice == "" {
			r.retailPrice = "0"
		}
		if r.reorderLevel == "" {
			r.reorderLevel = "0"
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no contiene productos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo de productos del distribuidor\n")
	out.WriteString("-- Generado desde el listado de precios (CSV)\n\n")
	out.WriteString("INSERT INTO products (id, name, manufacturer, hsn_code, tax_rate, retail_price, reorder_level) VALUES\n")
	for i, r := range rows {
		id := uuid.NewSHA1(productNamespace, []byte(r.name)).String()
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', %s, %s, %s)%s\n",
			id, escapeSQL(r.name), escapeSQL(r.manufacturer), escapeSQL(r.hsnCode),
			r.taxRate, r.retailPrice, r.reorderLevel, sep)
	}
	out.WriteString("ON CONFLICT (id) DO UPDATE SET\n")
	out.WriteString("  manufacturer = EXCLUDED.manufacturer,\n")
	out.WriteString("  hsn_code = EXCLUDED.hsn_code,\n")
	out.WriteString("  tax_rate = EXCLUDED.tax_rate,\n")
	out.WriteString("  retail_price = EXCLUDED.retail_price,\n")
	out.WriteString("  reorder_level = EXCLUDED.reorder_level,\n")
	out.WriteString("  updated_at = now();\n")

	fmt.Printf("Generado %s: %d productos\n", outPath, len(rows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
