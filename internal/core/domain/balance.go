package domain

// Balance is a signed amount in minor units relative to an account's normal
// side: positive means the balance sits on the normal side.
type Balance int64

// Buckets splits the balance into debit and credit columns. Exactly one of the
// two is non-zero unless the balance is zero.
func (b Balance) Buckets(side NormalSide) (debit, credit uint64) {
	mag := b.Magnitude()
	onNormal := b >= 0
	if (side == DebitNormal) == onNormal {
		return mag, 0
	}
	return 0, mag
}

// Side returns the side on which the balance currently sits.
func (b Balance) Side(normal NormalSide) NormalSide {
	if b >= 0 {
		return normal
	}
	if normal == DebitNormal {
		return CreditNormal
	}
	return DebitNormal
}

// Magnitude returns the absolute value of the balance.
func (b Balance) Magnitude() uint64 {
	if b < 0 {
		return uint64(-(b + 1)) + 1
	}
	return uint64(b)
}

// AccountPeriodBalance is the derived position of one account over one range.
type AccountPeriodBalance struct {
	AccountID      string  `json:"accountID"`
	OpeningBalance Balance `json:"openingBalance"`
	PeriodDebits   uint64  `json:"periodDebits"`
	PeriodCredits  uint64  `json:"periodCredits"`
	ClosingBalance Balance `json:"closingBalance"`
}

// HasActivity reports whether the account carries an opening balance or any
// movement in the period.
func (b AccountPeriodBalance) HasActivity() bool {
	return b.OpeningBalance != 0 || b.PeriodDebits != 0 || b.PeriodCredits != 0
}
