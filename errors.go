package trackable

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrPathTooDeep     = fmt.Errorf("path exceeds %d segments", MaxPathDepth)
	ErrInvalidArgument = errors.New("invalid argument")
)

// IndexError is the panic value for out-of-range list and path access.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// PayloadTypeError is the panic value of Get when a payload holds another type.
type PayloadTypeError struct {
	Have reflect.Type
	Want reflect.Type
}

func (e *PayloadTypeError) Error() string {
	if e.Have == nil {
		return fmt.Sprintf("payload is empty, wanted %v", e.Want)
	}
	return fmt.Sprintf("payload holds %v, wanted %v", e.Have, e.Want)
}

type ArgumentError struct {
	Op  string
	Arg string
	Msg string
}

func argErrf(op, arg string, format string, args ...any) error {
	return &ArgumentError{op, arg, fmt.Sprintf(format, args...)}
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func (e *ArgumentError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: invalid %s", e.Op, e.Arg)
	}
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Arg, e.Msg)
}
