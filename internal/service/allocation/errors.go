package allocation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSubstitution covers a bad material reference, a wrong
	// material kind or a non-positive quantity. Rejected before any mutation.
	ErrInvalidSubstitution = errors.New("invalid substitution")

	// ErrInsufficientAlternateStock means the alternate material no longer
	// covers the requested quantity. Checked again at apply time, the stock
	// may have moved since the proposal.
	ErrInsufficientAlternateStock = errors.New("insufficient alternate stock")

	// ErrInsufficientStockForCommit blocks TransferToPreparation while any
	// non-excluded material is still in deficit.
	ErrInsufficientStockForCommit = errors.New("insufficient stock for commit")

	// ErrNothingToCancel reports an ExecuteAdjustment selection that yields
	// zero eligible orders. A no-op, not a fatal error.
	ErrNothingToCancel = errors.New("nothing to cancel")
)

// CommitBlockedError carries the deficit materials that blocked a commit so
// the operator can resolve or exclude them. errors.Is matches it against
// ErrInsufficientStockForCommit.
type CommitBlockedError struct {
	MaterialCodes []string
}

func (e *CommitBlockedError) Error() string {
	return fmt.Sprintf("insufficient stock for commit: %s", strings.Join(e.MaterialCodes, ", "))
}

func (e *CommitBlockedError) Is(target error) bool {
	return target == ErrInsufficientStockForCommit
}
