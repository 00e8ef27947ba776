package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionInput is the writable part of a transaction.
type TransactionInput struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes"`
}

type Transaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type Summary struct {
	TotalExpense      decimal.Decimal `json:"totalExpense"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
}

type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ExportRecord struct {
	Key       string    `json:"key"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}
