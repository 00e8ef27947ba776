package cli

import (
	"context"
	"errors"
	"fmt"
	"path"
	"text/tabwriter"

	"github.com/dmitrijs2005/ledgerkeeper/internal/client/api"
	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/shopspring/decimal"
)

// Add prompts for every transaction field and creates the transaction.
func (a *App) Add(ctx context.Context) error {
	in, err := a.inputTransaction(api.TransactionInput{})
	if err != nil {
		return err
	}

	id, err := a.api.CreateTransaction(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Transaction added: %s\n", id)
	return nil
}

func (a *App) List(ctx context.Context) error {
	items, err := a.api.ListTransactions(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.printf("No transactions\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tTITLE")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Category, t.Amount.StringFixed(2), t.Title)
	}
	return tw.Flush()
}

func (a *App) Get(ctx context.Context, id string) error {
	t, err := a.api.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	a.printf("ID:       %s\n", t.ID)
	a.printf("Title:    %s\n", t.Title)
	a.printf("Amount:   %s\n", t.Amount.StringFixed(2))
	a.printf("Category: %s\n", t.Category)
	a.printf("Date:     %s\n", t.Date)
	if t.Notes != "" {
		a.printf("Notes:    %s\n", t.Notes)
	}
	return nil
}

// Update shows the current values as defaults and sends the full record.
func (a *App) Update(ctx context.Context, id string) error {
	t, err := a.api.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	in, err := a.inputTransaction(api.TransactionInput{
		Title:    t.Title,
		Amount:   t.Amount,
		Category: t.Category,
		Date:     t.Date,
		Notes:    t.Notes,
	})
	if err != nil {
		return err
	}

	if err := a.api.UpdateTransaction(ctx, id, in); err != nil {
		return err
	}
	a.printf("Transaction updated\n")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	a.printf("Transaction deleted\n")
	return nil
}

func (a *App) Summary(ctx context.Context) error {
	s, err := a.api.Summary(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range s.CategoryBreakdown {
		fmt.Fprintf(tw, "%s\t%s\n", c.Category, c.Total.StringFixed(2))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\n", s.TotalExpense.StringFixed(2))
	return tw.Flush()
}

// Export asks the server for a CSV snapshot and saves it to the export
// directory.
func (a *App) Export(ctx context.Context) error {
	res, err := a.api.Export(ctx)
	if err != nil {
		return err
	}

	data, err := a.download(ctx, res.URL)
	if err != nil {
		return fmt.Errorf("download export: %w", err)
	}

	p, err := a.save(a.config.ExportDir, path.Base(res.Key), data)
	if err != nil {
		return err
	}
	a.printf("Export saved to %s\n", p)
	return nil
}

// History prints recent exports.
func (a *App) History(ctx context.Context) error {
	items, err := a.api.ExportHistory(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.printf("No exports yet\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tROWS\tFILE")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Rows, path.Base(e.Key))
	}
	return tw.Flush()
}

// inputTransaction prompts for each field, offering cur as defaults.
func (a *App) inputTransaction(cur api.TransactionInput) (api.TransactionInput, error) {
	var (
		in  api.TransactionInput
		err error
	)

	if in.Title, err = GetWithDefault(a.reader, "Title", cur.Title, a.out); err != nil {
		return in, err
	}

	amount, err := GetWithDefault(a.reader, "Amount", cur.Amount.String(), a.out)
	if err != nil {
		return in, err
	}
	if in.Amount, err = decimal.NewFromString(amount); err != nil {
		return in, fmt.Errorf("amount %q is not a number", amount)
	}

	if in.Category, err = GetWithDefault(a.reader, "Category", cur.Category, a.out); err != nil {
		return in, err
	}
	if in.Date, err = GetWithDefault(a.reader, "Date (YYYY-MM-DD)", cur.Date, a.out); err != nil {
		return in, err
	}

	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return in, err
	}
	in.Notes = notes
	if notes == "" {
		in.Notes = cur.Notes
	}
	return in, nil
}

// describe turns API errors into short user-facing text.
func describe(err error) string {
	var se *api.StatusError
	switch {
	case errors.Is(err, api.ErrNotLoggedIn), errors.Is(err, api.ErrUnauthorized):
		return "please log in"
	case errors.Is(err, common.ErrorNotFound):
		return "transaction not found"
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable"
	case errors.As(err, &se) && se.Message != "":
		return se.Message
	default:
		return err.Error()
	}
}
