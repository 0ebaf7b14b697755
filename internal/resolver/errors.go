package resolver

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a debug configuration could not be resolved.
type ErrorKind string

const (
	KindMissingWorkspace     ErrorKind = "missing-workspace"
	KindMissingManifest      ErrorKind = "missing-manifest"
	KindManifestParseError   ErrorKind = "manifest-parse-error"
	KindDescriptorReadError  ErrorKind = "descriptor-read-error"
	KindMissingApplicationID ErrorKind = "missing-application-id"
	KindMissingBundleOutput  ErrorKind = "missing-bundle-output"
	KindMissingOutputOption  ErrorKind = "missing-output-option"
	KindProgramNotFound      ErrorKind = "program-not-found"
)

// Sentinels for errors.Is; every *Error matches the sentinel of its Kind.
var (
	ErrMissingWorkspace     = errors.New("missing workspace")
	ErrMissingManifest      = errors.New("missing manifest")
	ErrManifestParse        = errors.New("manifest parse error")
	ErrDescriptorRead       = errors.New("descriptor read error")
	ErrMissingApplicationID = errors.New("missing application id")
	ErrMissingBundleOutput  = errors.New("missing bundle output")
	ErrMissingOutputOption  = errors.New("missing output option")
	ErrProgramNotFound      = errors.New("program not found")
)

var sentinels = map[ErrorKind]error{
	KindMissingWorkspace:     ErrMissingWorkspace,
	KindMissingManifest:      ErrMissingManifest,
	KindManifestParseError:   ErrManifestParse,
	KindDescriptorReadError:  ErrDescriptorRead,
	KindMissingApplicationID: ErrMissingApplicationID,
	KindMissingBundleOutput:  ErrMissingBundleOutput,
	KindMissingOutputOption:  ErrMissingOutputOption,
	KindProgramNotFound:      ErrProgramNotFound,
}

// Error is a terminal resolution failure. Message is what the user sees.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func newError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// KindOf returns the ErrorKind of a resolution failure, or "" for any other error.
func KindOf(err error) ErrorKind {
	var resolveErr *Error
	if errors.As(err, &resolveErr) {
		return resolveErr.Kind
	}
	return ""
}
