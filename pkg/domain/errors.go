package domain

import (
	"errors"
	"fmt"
)

// ErrorKind categorises an error raised into a script.
type ErrorKind int

const (
	// KindUnknown is used when the model refused an operation for an unclassified reason.
	KindUnknown ErrorKind = iota
	// KindReference is used when a required selection or target is not present.
	KindReference
	// KindSyntax is used for malformed user input (colors, parameters, enum values).
	KindSyntax
	// KindRange is used for integer indexes out of bounds.
	KindRange
)

var kindNames = map[ErrorKind]string{
	KindUnknown:   "UnknownError",
	KindReference: "ReferenceError",
	KindSyntax:    "SyntaxError",
	KindRange:     "RangeError",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels matched by ScriptError.Is, so callers can write errors.Is(err, domain.ErrRange).
var (
	ErrUnknown   = errors.New("unknown error")
	ErrReference = errors.New("reference error")
	ErrSyntax    = errors.New("syntax error")
	ErrRange     = errors.New("range error")
)

// ErrExportUnsupported is returned by a model that has no exporter for a format.
var ErrExportUnsupported = errors.New("export format not supported")

// ErrNoPreviousExport is returned when "Last" is requested before any export ran.
var ErrNoPreviousExport = errors.New("no previous export")

// ScriptError is an error reported into the calling script.
type ScriptError struct {
	Kind    ErrorKind
	Op      string // Operation that reported the error, if known
	Message string
}

// NewScriptError creates a ScriptError for the given operation.
func NewScriptError(kind ErrorKind, op, message string) *ScriptError {
	return &ScriptError{Kind: kind, Op: op, Message: message}
}

func (e *ScriptError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// Is reports whether target is the sentinel matching the error kind.
func (e *ScriptError) Is(target error) bool {
	switch target {
	case ErrUnknown:
		return e.Kind == KindUnknown
	case ErrReference:
		return e.Kind == KindReference
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrRange:
		return e.Kind == KindRange
	}
	return false
}

// ErrClipboardEmpty is returned by a clipboard store that holds nothing.
var ErrClipboardEmpty = errors.New("clipboard is empty")
