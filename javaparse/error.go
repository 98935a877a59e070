package javaparse

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// LexError reports a lexical defect: an unterminated literal, an invalid
// escape, or a character in a context where no token can begin (spec §4.2,
// §7).
type LexError struct {
	Offset  uint32
	Line    int
	Column  int
	Message string
}

func (e LexError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("lex error: %s", e.Message)
	}
	return fmt.Sprintf("lex error: %s at line %d, column %d", e.Message, e.Line, e.Column)
}

// ParseErrorKind classifies a ParseError (spec §7, error taxonomy 2-5).
type ParseErrorKind int

const (
	// ExpectedToken is raised when the grammar committed to a token class
	// and found a different one.
	ExpectedToken ParseErrorKind = iota
	// RecursionLimit is raised when the parser's depth cap (1000) is
	// breached.
	RecursionLimit
	// ResourceLimit is raised when the arena's node-count or memory
	// watchdog fires.
	ResourceLimit
	// Feature is raised when a syntactic construct is used that the
	// selected language version does not enable.
	Feature
)

// ParseError is the sole failure mode of Parse: the first fatal syntax
// error, with location information. No partial AST is exposed alongside it
// (spec §7).
type ParseError struct {
	Kind    ParseErrorKind
	Line    int
	Column  int
	Message string
}

// The exact format required by spec §6: "Expected <KIND> but found <KIND>
// at line L, column C". The substring "position N" must never appear.
func (e ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
}

// FullMessage renders the offending source line with a caret under the
// failing column, then the one-line diagnostic, wrapping long messages at a
// terminal-friendly width.
func (e ParseError) FullMessage(src *Source, offset uint32) string {
	msg := rosed.Edit(e.Error()).Wrap(100).String()
	if src == nil {
		return msg
	}

	line := src.LineText(offset)
	cursor := ""
	for i := 0; i < e.Column-1; i++ {
		cursor += " "
	}
	cursor += "^"

	return line + "\n" + cursor + "\n" + msg
}

func expectedTokenError(src *Source, expected TokenKind, found Token) ParseError {
	pos := src.Position(found.Start)
	foundText := found.Kind.String()
	return ParseError{
		Kind:    ExpectedToken,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf("Expected %s but found %s", expected, foundText),
	}
}

func recursionLimitError(src *Source, offset uint32, limit int) ParseError {
	pos := src.Position(offset)
	return ParseError{
		Kind:    RecursionLimit,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf("Maximum recursion depth exceeded (%d); possible stack overflow", limit),
	}
}

func resourceLimitError(src *Source, offset uint32, message string) ParseError {
	pos := src.Position(offset)
	return ParseError{
		Kind:    ResourceLimit,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: message,
	}
}

func featureError(src *Source, offset uint32, feature string, version Version) ParseError {
	pos := src.Position(offset)
	return ParseError{
		Kind:    Feature,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf("%s is not available at language version %d", feature, version),
	}
}
