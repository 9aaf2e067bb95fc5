package style

import "fmt"

// ParseError reports a precisely located stylesheet problem: the
// offending rule or property is dropped and parsing continues.
type ParseError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	file := e.File
	if file == "" {
		file = "<stylesheet>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", file, e.Line, e.Column, e.Message)
}

// ImportDirective is a parsed `@import "path";`. Parse only collects
// these: nothing in this module loads the imported file, so its rules are
// not merged and circular imports are not detected.
type ImportDirective struct {
	Path string
	Line int
}
