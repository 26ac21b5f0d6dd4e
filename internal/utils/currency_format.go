package utils

import (
	"math/big"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/ledger_reporting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of minor-unit digits used when no currency
// is known (cents).
const DefaultPrecision = 2

// FormatMinorUnits formats an unsigned minor-unit amount with the given precision.
// Example: 123456 with precision 2 returns "1234.56"
// Example: 7 with precision 2 returns "0.07"
func FormatMinorUnits(amount uint64, precision int) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(precision))
	return d.StringFixed(int32(precision))
}

// FormatBalance formats a signed balance with the given precision.
// Example: -1050 with precision 2 returns "-10.50"
func FormatBalance(b domain.Balance, precision int) string {
	return decimal.New(int64(b), -int32(precision)).StringFixed(int32(precision))
}

// FormatWithCurrency renders a signed minor-unit amount using the currency's
// symbol and separators, e.g. 123456 USD -> "$1,234.56".
func FormatWithCurrency(amount int64, currencyCode string) string {
	return money.New(amount, currencyCode).Display()
}

// CurrencyPrecision returns the minor-unit digits of a currency, falling back
// to DefaultPrecision for unknown codes.
func CurrencyPrecision(currencyCode string) int {
	if c := money.GetCurrency(currencyCode); c != nil {
		return c.Fraction
	}
	return DefaultPrecision
}
