// services/errors.go
package services

import (
	"errors"
	"fmt"
	"time"
)

// Business-rule denials. These reject a transform without mutating state;
// handlers translate them into structured denial responses.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrNotFound          = errors.New("not found")
	ErrBindingExists     = errors.New("reaction role already bound for that message and emoji")
	ErrCodeTaken         = errors.New("short code already taken")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// CooldownActiveError is returned when a gated action is attempted before
// its window has elapsed.
type CooldownActiveError struct {
	Remaining time.Duration
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("cooldown active, retry in %s", e.Remaining.Round(time.Second))
}

// AsCooldown unwraps a CooldownActiveError if err is one.
func AsCooldown(err error) (*CooldownActiveError, bool) {
	var ce *CooldownActiveError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
