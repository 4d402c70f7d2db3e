package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/escapegrid/internal/fractal"
	"github.com/san-kum/escapegrid/internal/viz"
)

type Format string

const (
	PNG  Format = "png"
	SVG  Format = "svg"
	JSON Format = "json"
	CSV  Format = "csv"
)

var Formats = []Format{PNG, SVG, JSON, CSV}

var ErrUnknownFormat = errors.New("export: unknown format")

// FormatFor infers the output format from the file extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Formats {
		if string(f) == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

type Options struct {
	Meta  Meta
	Cmap  viz.Colormap
	Title string
	// Mono draws SVG output as a Braille dot plot of the bounded cells.
	Mono bool
}

// Write saves g to path in the format named by its extension.
func Write(path string, g *fractal.Grid, opts Options) (Format, error) {
	format, err := FormatFor(path)
	if err != nil {
		return "", err
	}

	switch format {
	case PNG:
		err = WritePNG(path, g, opts.Cmap)
	case SVG:
		var doc string
		if opts.Mono {
			doc = CanvasToSVG(viz.BrailleSet(g), 4, opts.Cmap.Hex(1))
		} else {
			doc, err = FigureSVG(g, opts.Meta.Region(), opts.Cmap, opts.Title)
		}
		if err == nil {
			err = os.WriteFile(path, []byte(doc), 0644)
		}
	case JSON:
		err = ExportJSON(path, opts.Meta, g)
	case CSV:
		err = ExportCSV(path, g)
	}
	return format, err
}

func createFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(file, write)
}

// writeAndClose reports the write error first, then the close error, so a
// failed flush is never reported as success.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
