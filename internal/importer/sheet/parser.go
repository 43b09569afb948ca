// Package sheet reads expense spreadsheets exported as CSV: the company
// expense sheet (planilla) and Venezuelan bank statements (banco).
package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	enc "github.com/MrJamesThe3rd/fletes/internal/encoding"
	"github.com/MrJamesThe3rd/fletes/internal/expense"
	"github.com/MrJamesThe3rd/fletes/internal/money"
)

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006"}

// Result is a parsed file. Rows may lack a category or a rate; the importer fills them.
type Result struct {
	Format  string
	Charset string
	Rows    []expense.CreateParams
}

// Parser detects the layout from the header row. When format is set only
// that layout is accepted.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader, format string) (*Result, error) {
	want := profiles
	if format != "" {
		prof := profileByName(format)
		if prof == nil {
			return nil, fmt.Errorf("unknown format %q, expected one of %s", format, strings.Join(Formats(), ", "))
		}

		want = []Profile{*prof}
	}

	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readCSV(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(want, rows)
		if profile == nil {
			continue
		}

		parsed, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		return &Result{Format: profile.Name, Charset: charset, Rows: parsed}, nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return &Result{Charset: charset}, nil
	}

	return nil, fmt.Errorf("no matching format found: expected the columns of %s", strings.Join(Formats(), " or "))
}

func readCSV(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// normalizeHeader lower-cases s and drops accents, so "Categoría" matches "categoria".
func normalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

// colIndex maps normalised column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	idx, ok := c[name]
	if !ok {
		return -1
	}

	return idx
}

func detectProfile(candidates []Profile, rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normalizeHeader(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into expense params. headerRowNum is the 0-based
// index of the first data row in the file, used in error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]expense.CreateParams, error) {
	var out []expense.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, cols.get(p.DateCol)))
		if !ok {
			continue
		}

		desc := cellValue(row, cols.get(p.DescCol))
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		params := expense.CreateParams{
			Description:    desc,
			RawDescription: desc,
			ExpenseDate:    date,
		}

		if ref := cellValue(row, cols.get(p.RefCol)); ref != "" {
			params.Description = desc + " (Ref. " + ref + ")"
		}

		if c, ok := expense.ParseCategory(cellValue(row, cols.get(p.CategoryCol))); ok {
			params.Category = c
		}

		keep, err := parseAmount(p, cols, row, &params)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if !keep {
			continue
		}

		if err := parseRate(cols.get(p.RateCol), cols.get(p.RateTypeCol), row, &params); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		out = append(out, params)
	}

	return out, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount sets the currency and authoritative amount. It reports false for rows that are not expenses.
func parseAmount(p *Profile, cols colIndex, row []string, params *expense.CreateParams) (bool, error) {
	currency := p.Currency

	if p.CurrencyCol != "" {
		c, err := money.ParseCurrency(cellValue(row, cols.get(p.CurrencyCol)))
		if err != nil {
			return false, err
		}

		currency = c
	}

	var cents int64

	switch p.AmountMode {
	case amountSingle:
		s := cellValue(row, cols.get(p.AmountCol))
		if s == "" {
			return false, nil
		}

		v, err := money.ParseAmount(s)
		if err != nil {
			return false, err
		}

		cents = abs(v)
	case amountSplit:
		s := cellValue(row, cols.get(p.DebitCol))
		if s == "" {
			// Credits are income, not expenses.
			return false, nil
		}

		v, err := money.ParseAmount(s)
		if err != nil {
			return false, err
		}

		cents = abs(v)
	}

	if cents == 0 {
		return false, nil
	}

	params.Currency = currency

	if currency == money.VES {
		params.Bolivares = &cents
	} else {
		params.Divisa = &cents
	}

	return true, nil
}

func parseRate(rateIdx, typeIdx int, row []string, params *expense.CreateParams) error {
	if s := cellValue(row, rateIdx); s != "" {
		rate, err := money.ParseDecimal(s)
		if err != nil {
			return err
		}

		params.Rate = &rate
	}

	if s := cellValue(row, typeIdx); s != "" {
		t, err := money.ParseRateType(s)
		if err != nil {
			return err
		}

		params.RateType = &t
	}

	if params.Rate != nil && params.RateType == nil {
		// A rate typed on the sheet without a source is a manual one.
		params.RateType = new(money.RateCustom)
	}

	return nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
