package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345678", "1.23 Cr"},
		{"234567", "2.35 L"},
		{"4500", "4.5 K"},
		{"900", "900"},
		{"10000000", "1 Cr"},
		{"100000", "1 L"},
		{"1000", "1 K"},
		{"0", "0"},
		{"999.99", "999.99"},
		{"-4500", "-4.5 K"},
		{"-12345678", "-1.23 Cr"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(dec(tt.in)))
		})
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "4500.00", Amount(dec("4500")))
	assert.Equal(t, "0.50", Amount(dec("0.5")))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "15 Jan 2025", Date(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "42.5%", Percent(dec("0.425")))
	assert.Equal(t, "100%", Percent(dec("1")))
	assert.Equal(t, "0%", Percent(dec("0")))
}
