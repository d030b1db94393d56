package localfile

import (
	"encoding/csv"
	"os"
)

// csvFormat keeps the table as UTF-8 CSV with the header on the first line.
type csvFormat struct{}

func (csvFormat) read(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func (csvFormat) write(path string, values [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(values); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
