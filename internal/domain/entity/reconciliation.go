package entity

import "time"

// LedgerTotals holds the sums of applied entries for one user, by type.
// Spend includes entries later marked refunded since their debit was applied.
type LedgerTotals struct {
	Purchased int64
	Spent     int64
	Refunded  int64
	Earned    int64
	Withdrawn int64
	Entries   int64
}

// FieldDrift is a stored counter that disagrees with the ledger
type FieldDrift struct {
	Account string `json:"account"`
	Field   string `json:"field"`
	Stored  int64  `json:"stored"`
	Derived int64  `json:"derived"`
}

// Difference returns stored minus derived
func (d FieldDrift) Difference() int64 {
	return d.Stored - d.Derived
}

// ReconciliationReport compares an account's cached counters against its ledger
type ReconciliationReport struct {
	UserID    string
	CheckedAt time.Time
	Totals    LedgerTotals
	Spender   *SpenderAccount
	Earner    *EarnerAccount
	Drifts    []FieldDrift
}

// HasDrift returns true if any counter differs from the ledger
func (r *ReconciliationReport) HasDrift() bool {
	return len(r.Drifts) > 0
}

func (r *ReconciliationReport) compare(account, field string, stored, derived int64) {
	if stored != derived {
		r.Drifts = append(r.Drifts, FieldDrift{Account: account, Field: field, Stored: stored, Derived: derived})
	}
}

// Reconcile builds a report for the given accounts, either of which may be nil
func Reconcile(userID string, totals LedgerTotals, spender *SpenderAccount, earner *EarnerAccount, policy RefundPolicy, checkedAt time.Time) *ReconciliationReport {
	report := &ReconciliationReport{
		UserID:    userID,
		CheckedAt: checkedAt,
		Totals:    totals,
		Spender:   spender,
		Earner:    earner,
	}

	// Reverse-spend refunds always name their spend, so the running floor never applies
	spent := totals.Spent
	if policy == RefundReverseSpend {
		spent -= totals.Refunded
		if spent < 0 {
			spent = 0
		}
	}

	if spender != nil {
		report.compare("spender", "coinBalance", spender.CoinBalance(), totals.Purchased-totals.Spent+totals.Refunded)
		report.compare("spender", "totalCoinsPurchased", spender.TotalCoinsPurchased, totals.Purchased)
		report.compare("spender", "totalCoinsSpent", spender.TotalCoinsSpent, spent)
	} else if totals.Purchased+totals.Spent+totals.Refunded > 0 {
		report.compare("spender", "coinBalance", 0, totals.Purchased-totals.Spent+totals.Refunded)
	}

	if earner != nil {
		report.compare("earner", "coinBalance", earner.CoinBalance(), totals.Earned-totals.Withdrawn)
		report.compare("earner", "totalCoinsEarned", earner.TotalCoinsEarned, totals.Earned)
		report.compare("earner", "coinsWithdrawn", earner.CoinsWithdrawn, totals.Withdrawn)
	} else if totals.Earned+totals.Withdrawn > 0 {
		report.compare("earner", "coinBalance", 0, totals.Earned-totals.Withdrawn)
	}

	return report
}
