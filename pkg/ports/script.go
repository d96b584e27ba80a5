package ports

import "github.com/sz10101/vym/pkg/domain"

// ScriptContext is the frame of the calling script. Errors raised into it surface
// in the script once the current operation returns.
type ScriptContext interface {
	ThrowError(kind domain.ErrorKind, message string)
}
