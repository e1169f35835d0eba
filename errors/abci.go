package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is the code of a successful ABCI response.
	SuccessABCICode = 0

	// Errors that are not registered in this package are reported with
	// this code and, outside of debug mode, with a generic log.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo translates err into the code and log of an ABCI response.
//
// Registered errors expose their code and message. Any other error is
// internal: it is reported with code 1 and its message is hidden unless
// debug is set. In debug mode the log carries the full formatting of the
// error, including the stack trace when one was recorded.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the chain of causes and returns the code of the first
// registered error found. Grouped errors report the code of their first
// member, as their Cause is the first member.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// Redact hides the details of every error that did not originate from a
// registered error, and of panics. Outside of debug mode such errors are
// replaced by a generic internal error.
func Redact(err error, debug bool) error {
	if debug || isNilErr(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
