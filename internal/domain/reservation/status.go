package reservation

import "fmt"

// Code is a closed set of reservation lifecycle states.
type Code string

const (
	CodePending           Code = "Pending"
	CodeAccepted          Code = "Accepted"
	CodeChooseSeats       Code = "Choose seats"
	CodeCompleted         Code = "Completed"
	CodePendingDevolution Code = "Pending devolution"
	CodeCanceled          Code = "Canceled"
	CodeCanceledByClient  Code = "Canceled by client"
	CodeTourCanceled      Code = "Tour canceled"
)

func (c Code) IsValid() bool {
	switch c {
	case CodePending, CodeAccepted, CodeChooseSeats, CodeCompleted,
		CodePendingDevolution, CodeCanceled, CodeCanceledByClient, CodeTourCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further lifecycle operation applies.
func (c Code) IsTerminal() bool {
	switch c {
	case CodeCompleted, CodeCanceled, CodeCanceledByClient, CodeTourCanceled:
		return true
	default:
		return false
	}
}

var statusDescriptions = map[Code]string{
	CodePending:           "Waiting for the minimum payment",
	CodeAccepted:          "Minimum payment received, reservation held",
	CodeChooseSeats:       "Fully paid, seats ready to be chosen",
	CodeCompleted:         "Seats assigned, reservation complete",
	CodePendingDevolution: "Refund owed to the client",
	CodeCanceled:          "Canceled",
	CodeCanceledByClient:  "Canceled by the client",
	CodeTourCanceled:      "Canceled because the tour was canceled",
}

// Status couples a lifecycle code with its description. Only the
// pending-devolution constructor can attach a follow-up code, so no
// other state can legally carry one.
type Status struct {
	code Code
	desc string
	next Code
}

// NewStatus builds a plain status. Pending-devolution states must go
// through NewPendingDevolution so they always carry their target.
func NewStatus(code Code) (Status, error) {
	if !code.IsValid() {
		return Status{}, fmt.Errorf("unknown reservation status %q", code)
	}
	if code == CodePendingDevolution {
		return Status{}, fmt.Errorf("pending devolution status requires a follow-up state")
	}
	return Status{code: code, desc: statusDescriptions[code]}, nil
}

func NewPendingDevolution(next Code) (Status, error) {
	if !next.IsValid() || next == CodePendingDevolution {
		return Status{}, fmt.Errorf("invalid follow-up state %q for pending devolution", next)
	}
	return Status{
		code: CodePendingDevolution,
		desc: statusDescriptions[CodePendingDevolution],
		next: next,
	}, nil
}

// ReconstructStatus rebuilds a status from storage without the
// constructor guards; persisted rows are trusted.
func ReconstructStatus(code Code, desc string, next Code) Status {
	return Status{code: code, desc: desc, next: next}
}

func (s Status) Code() Code          { return s.code }
func (s Status) Description() string { return s.desc }

// Next is only meaningful when Code is CodePendingDevolution.
func (s Status) Next() Code { return s.next }

func (s Status) IsTerminal() bool { return s.code.IsTerminal() }

func (s Status) IsCanceled() bool {
	switch s.code {
	case CodeCanceled, CodeCanceledByClient, CodeTourCanceled:
		return true
	default:
		return false
	}
}

func mustStatus(code Code) Status {
	s, err := NewStatus(code)
	if err != nil {
		panic(err)
	}
	return s
}

func mustPendingDevolution(next Code) Status {
	s, err := NewPendingDevolution(next)
	if err != nil {
		panic(err)
	}
	return s
}
