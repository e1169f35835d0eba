/*
Package errors implements custom error interfaces for jointbank.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. Root errors declared here
categorize issues into broad classes (unauthorized, not found, invalid state,
constraint violation, ...). An extension that needs a more precise error
should declare it with Extend, so that it keeps its own ABCI code while still
being recognised as a member of its class:

	ErrNotOwner = errors.ErrUnauthorized.Extend(1101, "not an owner")

	errors.ErrUnauthorized.Is(ErrNotOwner.New("alice")) // true

Use Wrap or Wrapf to add context to an error at the point of creation. We
attach a stacktrace at the lowest frame possible (most inner wrap), so create
the error instance where it happens and not as a global value.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
for the error
	%s is just the error message
	%+v is the full stack trace
*/
package errors
