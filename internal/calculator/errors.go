package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/sotien/internal/money"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrSplitMismatch        = errors.New("split mismatch")
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("only the payer can mark a share as paid")
	ErrAlreadyPaid          = errors.New("share already paid")
)

// MismatchError reports declared shares that do not add up to the total.
// It matches ErrSplitMismatch with errors.Is.
type MismatchError struct {
	Expected money.Cents
	Computed money.Cents
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("split mismatch: shares sum to %s, expected %s", e.Computed, e.Expected)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrSplitMismatch
}
