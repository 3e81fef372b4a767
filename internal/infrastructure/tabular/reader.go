// Package tabular lee filas de cheques desde CSV (UTF-8 o páginas de códigos bálticas) y XLSX.
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/apskaita-api/internal/application/importer"
)

// Columnas reconocidas. Se aceptan los encabezados en inglés o en lituano.
var columnAliases = map[string]string{
	"date":        "date",
	"data":        "date",
	"store":       "store",
	"parduotuvė":  "store",
	"parduotuve":  "store",
	"description": "description",
	"pavadinimas": "description",
	"quantity":    "quantity",
	"kiekis":      "quantity",
	"price":       "price",
	"kaina":       "price",
	"category":    "category",
	"tipas":       "category",
}

var requiredColumns = []string{"date", "store", "description", "quantity", "price", "category"}

// Decoder devuelve el decodificador para charset: utf-8 (por defecto, con o sin BOM),
// windows-1257 o iso-8859-13.
func Decoder(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "windows-1257", "cp1257":
		return charmap.Windows1257.NewDecoder(), nil
	case "iso-8859-13", "latin-7", "latin7":
		return charmap.ISO8859_13.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// record fila cruda con la línea del archivo en la que empieza.
type record struct {
	line   int
	fields []string
}

// ReadCSV decodifica r según charset y parsea las filas. El separador (',' o ';')
// se detecta en el encabezado. Cada fila conserva la línea real en la que empieza:
// las líneas vacías y los campos entre comillas con saltos de línea no la desplazan.
func ReadCSV(r io.Reader, charset string) ([]importer.Row, error) {
	dec, err := Decoder(charset)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(transform.NewReader(r, dec))
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("csv: leer encabezado: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = detectComma(head)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []record
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
	return parseRecords(records)
}

// ReadXLSX lee la primera hoja del libro.
func ReadXLSX(r io.Reader) ([]importer.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	// GetRows incluye las filas vacías intermedias, así que el índice es el número de fila.
	records := make([]record, len(rows))
	for i, fields := range rows {
		records[i] = record{line: i + 1, fields: fields}
	}
	return parseRecords(records)
}

func detectComma(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}
	return ','
}

func parseRecords(records []record) ([]importer.Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("archivo vacío")
	}
	cols := make(map[string]int, len(requiredColumns))
	for i, h := range records[0].fields {
		if name, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[name] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	rows := make([]importer.Row, 0, len(records)-1)
	for _, r := range records[1:] {
		line, rec := r.line, r.fields
		if blank(rec) {
			continue
		}
		get := func(name string) string {
			i := cols[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		qty, err := parseNumber(get("quantity"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: quantity: %w", line, err)
		}
		price, err := parseNumber(get("price"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: price: %w", line, err)
		}
		rows = append(rows, importer.Row{
			Line:        line,
			Date:        get("date"),
			Store:       get("store"),
			Description: get("description"),
			Quantity:    qty,
			Price:       price,
			Category:    get("category"),
		})
	}
	return rows, nil
}

// parseNumber acepta coma decimal ("1,50") y punto decimal; el valor se conserva exacto.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("vacío")
	}
	return decimal.NewFromString(s)
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
