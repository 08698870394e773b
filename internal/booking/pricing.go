package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseTicketCount accepts only a base-10 positive integer.
func ParseTicketCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: number of tickets must be a positive integer", ErrInvalidInput)
	}

	return n, nil
}

// TotalPrice rounds to cents once; the result is stored and never recomputed.
func TotalPrice(unit decimal.Decimal, tickets int) (decimal.Decimal, error) {
	total := unit.Mul(decimal.NewFromInt(int64(tickets))).Round(2)
	if total.IsNegative() {
		return decimal.Zero, ErrPriceComputation
	}

	return total, nil
}
