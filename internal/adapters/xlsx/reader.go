// Package xlsx lee exportaciones del CMS guardadas como planilla.
package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/hosteleria/internal/csvparse"
	"github.com/phenrril/hosteleria/internal/textfix"
)

var ErrNoSheets = errors.New("la planilla no tiene hojas")

// ReadTable devuelve la primera hoja con la misma forma que csvparse.Parse.
// El XML de la planilla ya es UTF-8, así que no pasa por textfix.Repair.
func ReadTable(r io.Reader) (csvparse.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return csvparse.Table{}, fmt.Errorf("abriendo planilla: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return csvparse.Table{}, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return csvparse.Table{}, fmt.Errorf("leyendo hoja %s: %w", sheets[0], err)
	}

	var t csvparse.Table
	for i, cells := range rows {
		if i == 0 {
			t.Headers = make([]string, len(cells))
			for j, h := range cells {
				t.Headers[j] = textfix.CleanField(h)
			}
			continue
		}
		t.Rows = append(t.Rows, csvparse.Row{Line: i + 1, Fields: cells})
	}
	return t, nil
}
