package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrIntegrity       = errors.New("taxonomy integrity violation")
	ErrNoPath          = errors.New("no path")
	ErrUnsupported     = errors.New("unsupported")
	ErrIO              = errors.New("i/o failure")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindInvalidConfig   ErrorKind = "invalid_config"
	KindIntegrity       ErrorKind = "integrity"
	KindNoPath          ErrorKind = "no_path"
	KindUnsupported     ErrorKind = "unsupported"
	KindIO              ErrorKind = "io"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:        ErrNotFound,
	KindInvalidArgument: ErrInvalidArgument,
	KindInvalidConfig:   ErrInvalidConfig,
	KindIntegrity:       ErrIntegrity,
	KindNoPath:          ErrNoPath,
	KindUnsupported:     ErrUnsupported,
	KindIO:              ErrIO,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match an OpError of kind KindNotFound.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// NewError is shorthand for an OpError without a path.
func NewError(op string, kind ErrorKind, format string, args ...any) error {
	return &OpError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// NotFound reports an id that is absent from a lookup table.
func NotFound(op, what, id string) error {
	return &OpError{Op: op, Kind: KindNotFound, Err: fmt.Errorf("%s %q", what, id)}
}
