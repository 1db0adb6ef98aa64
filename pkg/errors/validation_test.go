package errors

import (
	"testing"
)

func TestValidateInputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/values.csv", false},
		{"absolute", "/tmp/tips.csv", false},
		{"with spaces", "my data.csv", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "foo\x00.csv", true},
		{"newline", "foo\n.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateInputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"png", "histogram.png", false},
		{"dash", "pie-chart.png", false},
		{"underscore", "scatter_plot.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"slash", "out/histogram.png", true},
		{"backslash", `out\histogram.png`, true},
		{"parent", "..", true},
		{"dot", ".", true},
		{"control char", "foo\x01.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
