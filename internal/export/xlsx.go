// Package export renders records as spreadsheet downloads.
package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/GlebRadaev/recordbook/internal/domain"
)

const (
	SheetName   = "Records"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout  = "2006-01-02"
)

var header = []any{
	"ID", "Customer Name", "Order", "Order Date", "Total", "Delivery", "Deposit", "Remain",
	"Location", "Phone Number", "Capital", "Kilo", "Profit", "Profit Total", "Capital Total",
}

// WriteXLSX writes records to w as a workbook with a single sheet, one row
// per record after a header row.
func WriteXLSX(w io.Writer, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{
			r.ID, r.CustomerName, r.Order, r.OrderDate.Format(dateLayout),
			r.Total, r.Delivery, r.Deposit, r.Remain,
			r.Location, r.PhoneNumber, r.Capital, r.Kilo,
			r.Profit, r.ProfitTotal, r.CapitalTotal,
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SheetName, cell, &values)
}
