// Package sheet builds spreadsheet attachments for shop orders.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/barakadvert/storefront/internal/domain"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Order"
)

var header = []any{"Product ID", "Name", "Unit Price", "Quantity", "Line Total"}

type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// OrderSheet writes one row per line item and a total row.
func (b *Builder) OrderSheet(orderNumber string, items []domain.CartItem, total float64) (domain.Attachment, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return domain.Attachment{}, fmt.Errorf("order sheet: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A1", "Order"); err != nil {
		return domain.Attachment{}, fmt.Errorf("order sheet: %w", err)
	}
	if err := f.SetCellValue(sheetName, "B1", orderNumber); err != nil {
		return domain.Attachment{}, fmt.Errorf("order sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A3", &header); err != nil {
		return domain.Attachment{}, fmt.Errorf("order sheet: %w", err)
	}
	row := 4
	for _, it := range items {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		vals := []any{it.ProductID, it.Name, it.UnitPrice, it.Quantity, it.LineTotal()}
		if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
			return domain.Attachment{}, fmt.Errorf("order sheet: %w", err)
		}
		row++
	}
	cell, _ := excelize.CoordinatesToCellName(4, row)
	totalRow := []any{"Total", total}
	if err := f.SetSheetRow(sheetName, cell, &totalRow); err != nil {
		return domain.Attachment{}, fmt.Errorf("order sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("order sheet: %w", err)
	}
	return domain.Attachment{Name: orderNumber + ".xlsx", ContentType: xlsxContentType, Data: buf.Bytes()}, nil
}
