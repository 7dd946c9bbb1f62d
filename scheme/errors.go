package scheme

import "fmt"

// ErrKind classifies the error kinds enumerated in spec.md §7.
type ErrKind int

// Possible ErrKind values.
const (
	ErrInternal ErrKind = iota
	ErrRead
	ErrUnboundSymbol
	ErrArityMismatch
	ErrNotCallable
	ErrImproperList
	ErrUserError
	// ErrType supplements the enumeration in spec.md §7 for scalar
	// argument-type mismatches that are not a failure to iterate a list
	// (e.g. (car 5)); see SPEC_FULL.md §8.
	ErrType
)

var errKindStrings = []string{
	ErrInternal:      "internal",
	ErrRead:          "read-error",
	ErrUnboundSymbol: "unbound-symbol",
	ErrArityMismatch: "arity-mismatch",
	ErrNotCallable:   "not-callable",
	ErrImproperList:  "improper-list",
	ErrUserError:     "user-error",
	ErrType:          "type-error",
}

func (k ErrKind) String() string {
	if int(k) >= len(errKindStrings) {
		return errKindStrings[ErrInternal]
	}
	return errKindStrings[k]
}

// EvalError is the error type raised by every failure inside the evaluator,
// the reader, and the built-in procedures. Every kind but ErrUserError that
// Eval returns is augmented with a rendering of the pending continuation as
// a pseudo stack trace (spec.md §7); errors the reader returns directly
// carry no trace.
type EvalError struct {
	Kind    ErrKind
	Message string
	Trace   string
}

func (e *EvalError) Error() string {
	if e.Kind == ErrUserError {
		return e.Message
	}
	if e.Trace == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, e.Trace)
}

func newErr(kind ErrKind, format string, args ...interface{}) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func unboundSymbolErr(name string) *EvalError {
	return newErr(ErrUnboundSymbol, "unbound symbol: %s", name)
}

func arityErr(name string, want, got int) *EvalError {
	if want < 0 {
		return newErr(ErrArityMismatch, "%s: too many arguments (got %d)", name, got)
	}
	return newErr(ErrArityMismatch, "%s: expects %d argument(s) (got %d)", name, want, got)
}

func notCallableErr(v *Value) *EvalError {
	return newErr(ErrNotCallable, "not callable: %s", writeString(v))
}

func improperListErr(v *Value) *EvalError {
	return newErr(ErrImproperList, "improper list: %s", writeString(v))
}

func typeErr(proc string, v *Value) *EvalError {
	return newErr(ErrType, "%s: wrong type argument: %s", proc, writeString(v))
}

func internalErr(format string, args ...interface{}) *EvalError {
	return newErr(ErrInternal, format, args...)
}

// malformedFormErr flags a special form whose argument list is too short to
// destructure (spec.md §7's read-error kind covers syntactic malformation,
// not just tokenizer failures).
func malformedFormErr(form string) *EvalError {
	return newErr(ErrRead, "malformed %s: too few arguments", form)
}

func userErr(message string) *EvalError {
	return &EvalError{Kind: ErrUserError, Message: message}
}

// ReadError builds a read-error for use by the reader package, which lives
// outside this package to avoid an import cycle (reader constructs Values).
func ReadError(message string) error {
	return newErr(ErrRead, "%s", message)
}

// withTrace attaches k's pseudo stack trace to err, unless err is a
// user-error (spec.md §7: "User-error propagates unchanged").
func withTrace(err error, k *Continuation) error {
	ee, ok := err.(*EvalError)
	if !ok || ee.Kind == ErrUserError || ee.Trace != "" {
		return err
	}
	ee.Trace = k.DebugString()
	return ee
}
