package buildinfo

import (
	"strings"
	"testing"
)

func TestGenerator(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "none", "freqplot dev"},
		{"v0.3.0", "", "freqplot v0.3.0"},
		{"v0.3.0", "1a2b3c4", "freqplot v0.3.0 (1a2b3c4)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Generator(); got != tt.want {
			t.Errorf("Generator() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, Generator()+"\n") {
		t.Errorf("Template() = %q, want it to start with %q", got, Generator())
	}
	if !strings.Contains(got, "built: "+Date) {
		t.Errorf("Template() = %q, want build date %q", got, Date)
	}
}
