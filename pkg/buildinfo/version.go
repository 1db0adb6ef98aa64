// Package buildinfo holds the version stamped into freqplot at link time.
//
//	go build -ldflags "-X github.com/matzehuels/freqplot/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/freqplot/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" \
//	    ./cmd/freqplot
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

// Link-time variables.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Name is the program name used in version output and exported charts.
const Name = "freqplot"

// Generator identifies this build in exported chart data, e.g.
// "freqplot v0.3.0 (1a2b3c4)". The commit is omitted when unknown.
func Generator() string {
	if Commit == "none" || Commit == "" {
		return fmt.Sprintf("%s %s", Name, Version)
	}
	return fmt.Sprintf("%s %s (%s)", Name, Version, Commit)
}

// Template is the cobra version template: the generator line, then the
// build date.
func Template() string {
	return fmt.Sprintf("%s\nbuilt: %s\n", Generator(), Date)
}
