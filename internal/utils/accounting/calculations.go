package accounting

import (
	"errors"
	"fmt"
	"math"

	"github.com/SscSPs/ledger_reporting/internal/core/domain"
)

// ErrOverflow is returned when an amount leaves the representable range.
var ErrOverflow = errors.New("amount overflow")

// SignedDelta returns the effect of one posting on a balance kept relative to
// the account's normal side.
//
// DEBIT to a debit-normal account   -> Positive (+)
// CREDIT to a debit-normal account  -> Negative (-)
// DEBIT to a credit-normal account  -> Negative (-)
// CREDIT to a credit-normal account -> Positive (+)
func SignedDelta(side domain.NormalSide, debit, credit uint64) (int64, error) {
	if debit > math.MaxInt64 || credit > math.MaxInt64 {
		return 0, fmt.Errorf("%w: posting of %d/%d exceeds int64", ErrOverflow, debit, credit)
	}
	d, c := int64(debit), int64(credit)
	switch side {
	case domain.DebitNormal:
		return d - c, nil
	case domain.CreditNormal:
		return c - d, nil
	default:
		return 0, fmt.Errorf("unknown normal side '%s'", side)
	}
}

// Apply adds delta to b, failing instead of wrapping around.
func Apply(b domain.Balance, delta int64) (domain.Balance, error) {
	if (delta > 0 && int64(b) > math.MaxInt64-delta) || (delta < 0 && int64(b) < math.MinInt64-delta) {
		return b, fmt.Errorf("%w: balance %d + %d", ErrOverflow, b, delta)
	}
	return b + domain.Balance(delta), nil
}

// Post applies one posting to b for an account with the given normal side.
func Post(b domain.Balance, side domain.NormalSide, debit, credit uint64) (domain.Balance, error) {
	delta, err := SignedDelta(side, debit, credit)
	if err != nil {
		return b, err
	}
	return Apply(b, delta)
}

// AddUnsigned adds two unsigned totals, failing instead of wrapping around.
func AddUnsigned(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return a, fmt.Errorf("%w: total %d + %d", ErrOverflow, a, b)
	}
	return a + b, nil
}

// Closing derives the closing balance from an opening balance and period
// totals: opening + debits - credits for debit-normal accounts, mirrored for
// credit-normal ones.
func Closing(opening domain.Balance, side domain.NormalSide, debits, credits uint64) (domain.Balance, error) {
	return Post(opening, side, debits, credits)
}
