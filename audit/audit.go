// Package audit appends Transaction History rows for changes to stock.
package audit

import (
	"fmt"
	"strings"

	"github.com/Alex-H307/cafe-system/integrity"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/table"
)

const (
	StockTable   = "Stocks"
	HistoryTable = "Transaction History"
)

// Recorder writes history rows on behalf of one account.
type Recorder struct {
	checker   *integrity.Checker
	history   schema.Model
	accountID string
}

// NewRecorder returns a recorder, or an error when the registry has no
// Transaction History table.
func NewRecorder(registry *schema.Registry, checker *integrity.Checker, accountID string) (*Recorder, error) {
	history, ok := registry.ByName(HistoryTable)
	if !ok {
		return nil, fmt.Errorf("%w: %q", schema.ErrUnknownTable, HistoryTable)
	}
	return &Recorder{checker: checker, history: history, accountID: accountID}, nil
}

// Tracks reports whether changes to model are audited.
func Tracks(model schema.Model) bool {
	return model.Name == StockTable
}

// Check fails when the recorder's account does not exist. Callers run it
// before changing the stock row, so a history write cannot fail afterwards
// on the account reference.
func (r *Recorder) Check() error {
	if _, ok := r.history.FieldIndex("accountID"); !ok {
		return nil
	}
	if err := r.checker.CheckField("accountID", r.accountID); err != nil {
		return fmt.Errorf("recording transaction history: %w", err)
	}
	return nil
}

func (r *Recorder) Created(stock table.Record) (table.Record, error) {
	name := ""
	if len(stock) > 1 {
		name = stock[1]
	}
	return r.record(stock.Key(), fmt.Sprintf("'Created Record '%s'.'", name))
}

func (r *Recorder) Amended(stockID, field, value string) (table.Record, error) {
	return r.record(stockID, fmt.Sprintf("'Amended Record '%s's %s to: %s'.'", stockID, field, value))
}

// record goes through the checker, so the stock and the account must exist.
func (r *Recorder) record(stockID, change string) (table.Record, error) {
	change = strings.ReplaceAll(change, ",", " ")
	values := make([]string, len(r.history.Fields)-1)
	for i, f := range r.history.Fields[1:] {
		switch f.Name {
		case "stockID":
			values[i] = stockID
		case "accountID":
			values[i] = r.accountID
		case "change":
			values[i] = change
		}
	}
	rec, err := r.checker.Create(r.history, values)
	if err != nil {
		return nil, fmt.Errorf("recording transaction history: %w", err)
	}
	return rec, nil
}
