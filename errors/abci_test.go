package errors

import (
	"fmt"
	"io"
	"testing"
)

func TestABCInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain error": {
			err:      ErrNotFound,
			wantLog:  "not found",
			wantCode: ErrNotFound.code,
		},
		"wrapped error": {
			err:      Wrap(Wrap(ErrNotFound, "foo"), "bar"),
			wantLog:  "bar: foo: not found",
			wantCode: ErrNotFound.code,
		},
		"nil is empty message": {
			err:      nil,
			wantLog:  "",
			wantCode: 0,
		},
		"nil error instance is not an error": {
			err:      (*Error)(nil),
			wantLog:  "",
			wantCode: 0,
		},
		"stdlib is generic message": {
			err:      io.EOF,
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib returns error message in debug mode": {
			err:      io.EOF,
			debug:    true,
			wantLog:  "EOF",
			wantCode: 1,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(io.EOF, "cannot read file"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"extended error keeps its own code": {
			err:      Wrap(errTestExtended, "account 4"),
			wantLog:  "account 4: too many",
			wantCode: errTestExtended.code,
		},
		"collected errors report the first code": {
			err:      Append(ErrEmpty, ErrNotFound),
			wantLog:  "2 errors occurred:\n\t* value is empty\n\t* not found",
			wantCode: ErrEmpty.code,
		},
		"custom error": {
			err:      customErr{},
			wantLog:  "custom",
			wantCode: 999,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	cases := map[string]struct {
		err     error
		debug   bool
		changed bool
	}{
		"panic looses message": {
			err:     Wrap(ErrPanic, "some secret stack trace"),
			changed: true,
		},
		"panic is kept in debug mode": {
			err:   Wrap(ErrPanic, "some secret stack trace"),
			debug: true,
		},
		"registered error is kept": {
			err: Wrap(ErrNotFound, "account 1"),
		},
		"stdlib error is redacted": {
			err:     fmt.Errorf("cannot open file"),
			changed: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := Redact(tc.err, tc.debug)
			if tc.changed {
				if got == tc.err {
					t.Fatal("expected error to be redacted")
				}
				if got.Error() != internalABCILog {
					t.Fatalf("unexpected message: %q", got)
				}
			} else if got != tc.err {
				t.Fatalf("expected error to be kept, got %v", got)
			}
		})
	}
}

// customErr is a custom implementation of an error that provides an ABCICode
// method.
type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }
