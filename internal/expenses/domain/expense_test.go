package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
)

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{"positive", "100.50", nil},
		{"smallest cent", "0.01", nil},
		{"zero", "0", errors.ErrAmountNotPositive},
		{"negative", "-5.00", errors.ErrAmountNotPositive},
		{"rounds to zero", "0.004", errors.ErrAmountNotPositive},
		{"largest", "99999999.99", nil},
		{"too large", "100000000", errors.ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Expense{Amount: decimal.RequireFromString(tt.amount)}
			e.RoundToTwoDecimalPlaces()
			err := e.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRoundToTwoDecimalPlaces(t *testing.T) {
	e := Expense{Amount: decimal.RequireFromString("10.555")}
	e.RoundToTwoDecimalPlaces()
	assert.Equal(t, "10.56", e.Amount.StringFixed(2))
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2024, time.March, 9, 23, 45, 0, 0, loc)

	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

func TestHasCategory(t *testing.T) {
	assert.True(t, (&Expense{CategoryID: 3}).HasCategory())
	assert.False(t, (&Expense{}).HasCategory())
}
