package md3

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a decode failure.
type Kind int

const (
	KindIO Kind = iota
	KindInvalidFormat
	KindCorruptData
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInvalidFormat:
		return "invalid format"
	case KindCorruptData:
		return "corrupt data"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrInvalidFormat = errors.New("md3: invalid format")
	ErrCorruptData   = errors.New("md3: corrupt data")
)

// DecodeError is returned for every failed Load or Decode. Step names the
// part of the file being processed.
type DecodeError struct {
	Kind Kind
	Step string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("md3: %s: %v", e.Step, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrInvalidFormat:
		return e.Kind == KindInvalidFormat
	case ErrCorruptData:
		return e.Kind == KindCorruptData
	}
	return false
}

func ioError(step string, err error) error {
	return &DecodeError{Kind: KindIO, Step: step, Err: errors.WithStack(err)}
}

func corrupt(step, format string, args ...interface{}) error {
	return &DecodeError{Kind: KindCorruptData, Step: step, Err: errors.Errorf(format, args...)}
}

// IsKind reports whether err is a DecodeError of kind k.
func IsKind(err error, k Kind) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind == k
	}
	return false
}
