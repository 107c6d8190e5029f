package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ponto/internal/timeclock"
)

var timesheetHeader = []string{
	"Colaborador", "Data", "Entrada", "Almoço Início", "Almoço Fim",
	"Saída", "HTP Início", "HTP Fim", "Horas Trabalhadas", "Horas HTP",
}

// BuildTimesheet renders scope-filtered clock records into a workbook.
func BuildTimesheet(records []timeclock.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Espelho de Ponto"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for col, h := range timesheetHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(timesheetHeader)) + "1"
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for i, rec := range records {
		row := i + 2
		cells := []string{
			rec.UserEmail,
			rec.Day,
			deref(rec.Entry),
			deref(rec.LunchStart),
			deref(rec.LunchEnd),
			deref(rec.Exit),
			deref(rec.HTPStart),
			deref(rec.HTPEnd),
			deref(rec.WorkedHours),
			deref(rec.HTPHours),
		}
		for col, v := range cells {
			cell := fmt.Sprintf("%s%d", colName(col+1), row)
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
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

// colName converts a 1-based column index to its spreadsheet letter.
func colName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
