package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"booking-calendar-api/internal/model"
)

const sheetName = "Appuntamenti"

var headers = []string{
	"Data", "Ora inizio", "Ora fine", "Cliente", "Telefono",
	"Titolo", "Tipo", "Stato", "Luogo", "Urgente",
}

// AppointmentsWorkbook renders a range of appointments as an xlsx workbook,
// one row per appointment, in the order given.
func AppointmentsWorkbook(items []model.AppointmentDetail) (*excelize.File, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	f.SetActiveSheet(idx)

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	for i, a := range items {
		values := []any{
			a.Date, a.StartTime, a.EndTime,
			a.ClientLastName + " " + a.ClientFirstName, a.ClientPhone,
			a.Title, deref(a.TypeName), string(a.Status), deref(a.Location), a.Urgent,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
