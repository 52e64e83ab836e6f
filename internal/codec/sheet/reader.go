// Package sheet reads line items from spreadsheet exports (CSV).
//
// Cells are classified into domain.CellValue before coercion, so a
// quantity typed as "12", "$12.00" or left blank is handled explicitly
// rather than by inspecting types at runtime.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/estix-cli/internal/money"
)

// Ensure Reader implements the interface.
var _ driven.SheetReader = (*Reader)(nil)

type column int

const (
	colRoom column = iota
	colSelector
	colDescription
	colQuantity
	colUnit
	colUnitPrice
	colTotal
	colCategory
)

// headerAliases maps normalised header text to a column.
var headerAliases = map[string]column{
	"room":        colRoom,
	"roomname":    colRoom,
	"selector":    colSelector,
	"code":        colSelector,
	"description": colDescription,
	"desc":        colDescription,
	"quantity":    colQuantity,
	"qty":         colQuantity,
	"unit":        colUnit,
	"uom":         colUnit,
	"unitprice":   colUnitPrice,
	"price":       colUnitPrice,
	"total":       colTotal,
	"category":    colCategory,
	"cat":         colCategory,
}

// Reader parses CSV line-item sheets.
type Reader struct{}

// NewReader creates a new sheet reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses data. The first row must be a header naming at least a
// selector or description column; column order is free. Rows whose
// cells are all blank are skipped.
func (r *Reader) Read(data []byte) ([]domain.ParsedLineItem, error) {
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := mapHeader(header)
	_, hasSelector := cols[colSelector]
	_, hasDescription := cols[colDescription]
	if !hasSelector && !hasDescription {
		return nil, fmt.Errorf("%w: need a selector or description column", domain.ErrMissingHeader)
	}

	var items []domain.ParsedLineItem
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		cells := make(map[column]domain.CellValue, len(cols))
		blank := true
		for col, idx := range cols {
			cell := domain.EmptyCell()
			if idx < len(record) {
				cell = domain.ParseCell(record[idx])
			}
			if !cell.IsEmpty() {
				blank = false
			}
			cells[col] = cell
		}
		if blank {
			continue
		}

		items = append(items, rowToItem(cells))
	}

	return items, nil
}

func mapHeader(header []string) map[column]int {
	cols := make(map[column]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
		if col, ok := headerAliases[key]; ok {
			if _, seen := cols[col]; !seen {
				cols[col] = i
			}
		}
	}
	return cols
}

func rowToItem(cells map[column]domain.CellValue) domain.ParsedLineItem {
	get := func(c column) domain.CellValue {
		if v, ok := cells[c]; ok {
			return v
		}
		return domain.EmptyCell()
	}

	qty := get(colQuantity).AsNumber(0)
	price := get(colUnitPrice).AsNumber(0)
	total := get(colTotal)

	item := domain.ParsedLineItem{
		Selector:    get(colSelector).AsText(),
		Description: get(colDescription).AsText(),
		Quantity:    qty,
		Unit:        get(colUnit).AsText(),
		UnitPrice:   price,
		Category:    get(colCategory).AsText(),
		RoomName:    get(colRoom).AsText(),
		RoomIndex:   -1,
	}
	if total.IsEmpty() {
		item.Total = money.Round(qty * price)
	} else {
		item.Total = total.AsNumber(0)
	}
	return item
}
