package views

import "fmt"

type Kind int

const (
	UnexpectedFailure Kind = iota
	RecordNotFound
	StoreReadFailure
	StoreWriteFailure
)

func (k Kind) String() string {
	switch k {
	case RecordNotFound:
		return "record-not-found"
	case StoreReadFailure:
		return "store-read-failure"
	case StoreWriteFailure:
		return "store-write-failure"
	default:
		return "unexpected-failure"
	}
}

type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.String()
	}

	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(kind Kind, err error) Result {
	return Result{Failure: &Failure{Kind: kind, Err: err}}
}

func recovered(value any) Result {
	if err, ok := value.(error); ok {
		return fail(UnexpectedFailure, err)
	}

	return fail(UnexpectedFailure, fmt.Errorf("%v", value))
}

// Result is the outcome of one increment: the new count, or the reason no
// increment was confirmed.
type Result struct {
	Views   int64
	Failure *Failure
}

func (r Result) Ok() bool {
	return r.Failure == nil
}
