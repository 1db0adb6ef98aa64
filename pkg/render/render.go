package render

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/freqplot/pkg/chart"
	"github.com/matzehuels/freqplot/pkg/errors"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// Formats lists the supported output formats, default first.
var Formats = []string{FormatPNG, FormatSVG, FormatJSON}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, json)", format)
	}
	return nil
}

// Render encodes spec in the given format.
func Render(spec chart.Spec, format string) ([]byte, error) {
	switch format {
	case FormatPNG:
		return ToPNG(spec)
	case FormatSVG:
		return ToSVG(spec), nil
	case FormatJSON:
		return ToJSON(spec)
	default:
		return nil, ValidateFormat(format)
	}
}

// OutputName swaps the extension of file for the one matching format.
// "histogram.png" becomes "histogram.svg" for FormatSVG.
func OutputName(file, format string) string {
	ext := filepath.Ext(file)
	if strings.TrimPrefix(ext, ".") == format {
		return file
	}
	return strings.TrimSuffix(file, ext) + "." + format
}
