package listing

import "auction-house/internal/pkg/errs"

type Status string

const (
	StatusActive    Status = "active"
	StatusSold      Status = "sold"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

var ErrInvalidStatus = errs.New("invalid listing status")

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", errs.Wrapf(ErrInvalidStatus, "%q", s)
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSold, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the listing can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusSold || s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo allows only Active -> terminal. Nothing ever returns to Active.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusActive && next.IsTerminal()
}
