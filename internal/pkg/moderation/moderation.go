// Package moderation holds the two-state status machine shared by the
// content entities. Each entity picks a policy: a loose toggle between its
// two states, or a directional gate that checks the exact predecessor.
package moderation

import (
	"errors"
	"fmt"

	"github.com/triponation/core/internal/models"
)

// Error is a policy violation. Handlers map it to a 400; everything else
// coming out of Check is a programming error.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// IsPolicyError reports whether err is a moderation policy violation.
func IsPolicyError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// Policy validates status transitions for one entity type.
type Policy struct {
	label       string
	states      [2]models.Status
	directional bool
}

// NewToggle allows any move between the two states, rejecting only a
// transition to the current status.
func NewToggle(label string, a, b models.Status) Policy {
	return Policy{label: label, states: [2]models.Status{a, b}}
}

// NewDirectional additionally requires the current status to be the exact
// predecessor of the requested one.
func NewDirectional(label string, a, b models.Status) Policy {
	return Policy{label: label, states: [2]models.Status{a, b}, directional: true}
}

// Check validates a requested transition. A nil return means the caller
// may persist next as the new status.
func (p Policy) Check(current, next models.Status) error {
	if next != p.states[0] && next != p.states[1] {
		return &Error{msg: fmt.Sprintf("Invalid status value. Must be '%s' or '%s'.", p.states[0], p.states[1])}
	}
	if next == current {
		return &Error{msg: fmt.Sprintf("%s is already %s", p.label, next)}
	}
	if p.directional {
		pred := p.states[0]
		if next == p.states[0] {
			pred = p.states[1]
		}
		if current != pred {
			return &Error{msg: fmt.Sprintf("%s can only be marked %s from %s", p.label, next, pred)}
		}
	}
	return nil
}

// States returns the two statuses the policy cycles between, default first.
func (p Policy) States() (models.Status, models.Status) {
	return p.states[0], p.states[1]
}
