// Package report renders booking listings as xlsx workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"shareit/internal/models"
)

const sheetName = "Bookings"

var headers = []string{"ID", "Item", "Booker", "Start", "End", "Status"}

const timeFormat = "02.01.2006 15:04"

// WriteOwnerBookings writes an xlsx workbook with one row per booking,
// newest first, to w.
func WriteOwnerBookings(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, booking := range bookings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), booking.Item.Name)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), booking.Booker.Name)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), booking.Start.Format(timeFormat))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), booking.End.Format(timeFormat))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), booking.Status)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 12)

	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
