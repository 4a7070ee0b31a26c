// File: pkg/combine/config.go
package combine

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultExtension is the file extension combined when none is configured.
const DefaultExtension = "csv"

// Arguments holds the configuration options for one combine run.
type Arguments struct {
	Root             string // Directory that is scanned and receives the output file.
	Extension        string // Extension to match, without the leading dot. Case-sensitive.
	GlobalIgnoreFile string // Optional path to a global ignore file applied before <root>/.combineignore.
	XLSX             bool   // If true, also write <base>-combined.xlsx next to the CSV output.
}

// withDefaults returns a copy of args with empty fields filled in.
func (a Arguments) withDefaults() Arguments {
	if a.Root == "" {
		a.Root = "."
	}
	if a.Extension == "" {
		a.Extension = DefaultExtension
	}
	return a
}

// ValidateExtension rejects extensions that would not form a plain
// "<base>-combined.<ext>" file name inside the root.
func ValidateExtension(ext string) error {
	if ext == "" {
		return errors.New("extension must not be empty")
	}
	if strings.HasPrefix(ext, ".") {
		return fmt.Errorf("extension %q must not start with a dot", ext)
	}
	if strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("extension %q must not contain path separators", ext)
	}
	return nil
}
