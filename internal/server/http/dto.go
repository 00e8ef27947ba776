package httpx

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWTToken string `json:"jwtToken"`
}

// transactionRequest accepts amount as a JSON number or a numeric string.
type transactionRequest struct {
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes"`
}

func (r transactionRequest) fields() models.TransactionFields {
	return models.TransactionFields{
		Title:    r.Title,
		Amount:   r.Amount,
		Category: r.Category,
		Date:     r.Date,
		Notes:    r.Notes,
	}
}

type transactionResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Title     string      `json:"title"`
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	Date      string      `json:"date"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
}

func toTransactionResponse(t *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID,
		UserID:    t.OwnerID,
		Title:     t.Title,
		Amount:    number(t.Amount),
		Category:  t.Category,
		Date:      t.Date,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}

type categoryTotalResponse struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

type summaryResponse struct {
	TotalExpense      json.Number             `json:"totalExpense"`
	CategoryBreakdown []categoryTotalResponse `json:"categoryBreakdown"`
}

func toSummaryResponse(s *models.Summary) summaryResponse {
	out := summaryResponse{
		TotalExpense:      number(s.TotalExpense),
		CategoryBreakdown: make([]categoryTotalResponse, 0, len(s.CategoryBreakdown)),
	}
	for _, c := range s.CategoryBreakdown {
		out.CategoryBreakdown = append(out.CategoryBreakdown, categoryTotalResponse{
			Category: c.Category,
			Total:    number(c.Total),
		})
	}
	return out
}

type exportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type exportRecordResponse struct {
	Key       string    `json:"key"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// number renders d as an exact JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
