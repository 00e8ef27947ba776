package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/shopspring/decimal"
)

// Amount bounds, matching the NUMERIC(38, 8) amount column.
const (
	AmountPrecision = 38
	AmountScale     = 8
)

// Transaction is one ledger row. OwnerID always comes from the verified
// session. Date is caller-supplied text and is not validated; Amount may be
// of either sign.
type Transaction struct {
	ID        string
	OwnerID   string
	Title     string
	Amount    decimal.Decimal
	Category  string
	Date      string
	Notes     string
	CreatedAt time.Time
}

// TransactionFields is the client-writable part of a Transaction, used for
// create and full-replace update.
type TransactionFields struct {
	Title    string
	Amount   decimal.Decimal
	Category string
	Date     string
	Notes    string
}

// Validate rejects amounts that do not fit the amount column without
// rounding. Other fields are free text.
func (f TransactionFields) Validate() error {
	if !AmountFits(f.Amount) {
		return fmt.Errorf("%w: amount out of range", common.ErrValidation)
	}
	return nil
}

// AmountFits reports whether d has at most AmountScale fractional digits and
// AmountPrecision-AmountScale integer digits. It works on the coefficient
// and exponent only and never expands d.
func AmountFits(d decimal.Decimal) bool {
	if d.IsZero() {
		return true
	}

	coef := d.Coefficient()
	digits := strings.TrimLeft(coef.String(), "-")
	trimmed := strings.TrimRight(digits, "0")
	exp := int64(d.Exponent()) + int64(len(digits)-len(trimmed))

	if exp < -AmountScale {
		return false
	}
	return int64(len(trimmed))+exp <= AmountPrecision-AmountScale
}
