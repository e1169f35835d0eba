package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. A nil
// result is returned when no non-nil error was given.
//
// The resulting error reports the ABCI code and the cause of the first
// collected error, consistent with a fail-fast approach.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

type multiErr []error

var _ unpacker = multiErr(nil)

func (m multiErr) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	points := make([]string, len(m))
	for i, e := range m {
		points[i] = fmt.Sprintf("* %s", e)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(points, "\n\t"))
}

// Unpack returns all collected errors.
func (m multiErr) Unpack() []error {
	return m
}

// Cause returns the first collected error.
func (m multiErr) Cause() error {
	return m[0]
}

// unpacker is implemented by errors that group multiple errors together.
type unpacker interface {
	Unpack() []error
}
