package entity

import "fmt"

// Result is the outcome of a single backend call: either Answered or Failed.
type Result interface {
	isResult()
}

type Answered struct {
	Answer Answer
}

func (Answered) isResult() {}

type FailureKind string

const (
	FailureTransport     FailureKind = "transport"
	FailureDecode        FailureKind = "decode"
	FailureMissingAnswer FailureKind = "missing_answer"
)

type Failed struct {
	Kind FailureKind
	Err  error
}

func (Failed) isResult() {}

func (f Failed) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f Failed) Unwrap() error {
	return f.Err
}
