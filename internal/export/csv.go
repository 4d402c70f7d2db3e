package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/escapegrid/internal/fractal"
)

// WriteCSV writes one record per grid row, starting at row 0 (YMin).
func WriteCSV(w io.Writer, g *fractal.Grid) error {
	cw := csv.NewWriter(w)

	record := make([]string, g.Width())
	for y := 0; y < g.Height(); y++ {
		for x := range record {
			record[x] = strconv.Itoa(g.At(x, y))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, g *fractal.Grid) error {
	return createFile(path, func(w io.Writer) error {
		return WriteCSV(w, g)
	})
}
