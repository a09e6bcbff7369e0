package format

import (
	"fmt"
	"strings"
)

// Format names a delimiter that separates term from definition.
type Format struct {
	Name      string `json:"name"`
	Delimiter string `json:"delimiter"`
}

// Registered format names.
const (
	NameTSV        = "tsv"
	NameCSV        = "csv"
	NameSemicolon  = "semicolon"
	NameDoubleHash = "double_hash"
	NamePipe       = "pipe"
	NameCustom     = "custom"
)

// Built-in formats in detection priority order.
var (
	TSV        = Format{Name: NameTSV, Delimiter: "\t"}
	CSV        = Format{Name: NameCSV, Delimiter: ","}
	Semicolon  = Format{Name: NameSemicolon, Delimiter: ";"}
	DoubleHash = Format{Name: NameDoubleHash, Delimiter: "##"}
	Pipe       = Format{Name: NamePipe, Delimiter: "|"}
)

var builtin = []Format{TSV, CSV, Semicolon, DoubleHash, Pipe}

// Formats returns the built-in formats in detection priority order.
func Formats() []Format {
	out := make([]Format, len(builtin))
	copy(out, builtin)
	return out
}

// Names returns the names of the built-in formats in priority order.
func Names() []string {
	names := make([]string, len(builtin))
	for i, f := range builtin {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the built-in format with the given name, ignoring case.
func Lookup(name string) (Format, error) {
	for _, f := range builtin {
		if strings.EqualFold(f.Name, strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Custom returns a format for an arbitrary delimiter.
func Custom(delimiter string) (Format, error) {
	if delimiter == "" {
		return Format{}, ErrEmptyDelimiter
	}
	return Format{Name: NameCustom, Delimiter: delimiter}, nil
}

// String renders the format as its name followed by the quoted delimiter.
func (f Format) String() string {
	return fmt.Sprintf("%s (%q)", f.Name, f.Delimiter)
}
