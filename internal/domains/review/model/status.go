package model

import "strings"

// Status là trạng thái moderation của review
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// AllStatuses theo thứ tự hiển thị
var AllStatuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus chấp nhận đúng ba giá trị (không phân biệt hoa thường, bỏ khoảng trắng)
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewInvalidStatusError(raw)
	}
	return s, nil
}

// Transition checks a moderation move from -> to.
// changed=false means a self-transition: nothing to write.
// A decided review (approved/rejected) can never return to pending.
func Transition(from, to Status) (changed bool, err error) {
	if !to.Valid() {
		return false, NewInvalidStatusError(string(to))
	}
	if from == to {
		return false, nil
	}
	if to == StatusPending {
		return false, NewInvalidTransitionError(from, to)
	}
	return true, nil
}
