package dto

import (
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/SscSPs/ledger_reporting/internal/utils"
)

// Amount is an unsigned amount in minor units with its display string.
type Amount struct {
	Minor   uint64 `json:"minor"`
	Display string `json:"display"`
}

// BalanceAmount is a signed balance relative to the account's normal side.
// Side names where the balance currently sits.
type BalanceAmount struct {
	Minor   int64             `json:"minor"`
	Side    domain.NormalSide `json:"side"`
	Display string            `json:"display"`
}

// NewAmount formats v with the default two-digit precision.
func NewAmount(v uint64) Amount {
	return Amount{Minor: v, Display: utils.FormatMinorUnits(v, utils.DefaultPrecision)}
}

// NewBalanceAmount formats b relative to the given normal side.
func NewBalanceAmount(b domain.Balance, normal domain.NormalSide) BalanceAmount {
	return BalanceAmount{
		Minor:   int64(b),
		Side:    b.Side(normal),
		Display: utils.FormatBalance(b, utils.DefaultPrecision),
	}
}
