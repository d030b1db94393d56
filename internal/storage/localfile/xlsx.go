package localfile

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/gearcheck/internal/models"
)

// xlsxFormat reads and writes the first worksheet of a workbook.
type xlsxFormat struct{}

func (xlsxFormat) read(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func (xlsxFormat) write(path string, values [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range values {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = models.CellValue(c)
		}
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return f.SaveAs(path)
}
