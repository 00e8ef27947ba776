package models

import "github.com/shopspring/decimal"

// CategoryTotal is the sum of amounts for one exact category label.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Summary is the dashboard aggregate of one owner's ledger.
type Summary struct {
	TotalExpense      decimal.Decimal
	CategoryBreakdown []CategoryTotal
}
