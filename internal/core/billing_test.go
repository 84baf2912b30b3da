package core

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildInvoiceSingleLine(t *testing.T) {
	// 1.5h at 100/h: the canonical merge of two "A" entries (3600+1800s).
	inv := BuildInvoice(map[string]int64{"A": 5400}, 100)

	if len(inv.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(inv.Lines))
	}
	line := inv.Lines[0]
	if line.ExactHours.Cmp(big.NewRat(3, 2)) != 0 {
		t.Errorf("exact hours: got %s, want 3/2", line.ExactHours)
	}
	if got := line.RoundedHours.StringFixed(2); got != "1.50" {
		t.Errorf("rounded hours: got %s, want 1.50", got)
	}
	if got := line.Price.StringFixed(2); got != "150.00" {
		t.Errorf("price: got %s, want 150.00", got)
	}
	if got := inv.TotalPrice.StringFixed(2); got != "150.00" {
		t.Errorf("total price: got %s, want 150.00", got)
	}
	if inv.Deviation.Sign() != 0 {
		t.Errorf("deviation: got %s, want 0", inv.Deviation)
	}
}

func TestRoundRatHalfAway(t *testing.T) {
	cases := []struct {
		num, den int64
		want     string
	}{
		{3, 2, "1.50"},
		{1, 200, "0.01"},  // 0.005, exact tie rounds away from zero
		{1, 3600, "0.00"}, // one second
		{3601, 3600, "1.00"},
		{1, 1, "1.00"},
		{-1, 200, "-0.01"}, // tie away from zero on the negative side too
		{9999, 10000, "1.00"},
	}
	for i, tc := range cases {
		got := roundRatHalfAway(big.NewRat(tc.num, tc.den), 2)
		if got.StringFixed(2) != tc.want {
			t.Fatalf("case %d: round(%d/%d) = %s, want %s", i, tc.num, tc.den, got.StringFixed(2), tc.want)
		}
	}
}

func TestBuildInvoiceDeviationExact(t *testing.T) {
	// 3601s: exact 3601/3600h, billed 1.00h. Deviation = (1 - 3601/3600)*100.
	inv := BuildInvoice(map[string]int64{"A": 3601}, 100)

	want := new(big.Rat).SetFrac64(-100, 3600)
	if inv.Deviation.Cmp(want) != 0 {
		t.Fatalf("deviation: got %s, want %s", inv.Deviation, want)
	}
	if got := inv.DeviationString(); got != "-0.03" {
		t.Errorf("deviation string: got %s, want -0.03", got)
	}
}

func TestBuildInvoiceDeviationSumsAllLines(t *testing.T) {
	totals := map[string]int64{
		"A": 18,   // 0.005h -> 0.01, +0.005
		"B": 1,    // 1/3600h -> 0.00, -1/3600
		"C": 3600, // exact
	}
	inv := BuildInvoice(totals, 10)

	want := new(big.Rat)
	rate := new(big.Rat).SetInt64(10)
	for _, line := range inv.Lines {
		d := new(big.Rat).Sub(line.RoundedHours.Rat(), line.ExactHours)
		want.Add(want, d.Mul(d, rate))
	}
	if inv.Deviation.Cmp(want) != 0 {
		t.Fatalf("deviation: got %s, want %s", inv.Deviation, want)
	}
}

func TestBuildInvoiceOrdering(t *testing.T) {
	totals := map[string]int64{
		"zeta":  7200,
		"alpha": 1800,
		"beta":  1800,
		"big":   10800,
	}
	inv := BuildInvoice(totals, 50)

	got := make([]string, 0, len(inv.Lines))
	for _, line := range inv.Lines {
		got = append(got, line.Description)
	}
	want := []string{"big", "zeta", "alpha", "beta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: got %q, want %q (full order %v)", i, got[i], want[i], got)
		}
	}
}

func TestBuildInvoiceTotals(t *testing.T) {
	totals := map[string]int64{"A": 5400, "B": 1800}
	inv := BuildInvoice(totals, 80)

	if got := inv.TotalHours.StringFixed(2); got != "2.00" {
		t.Errorf("total hours: got %s, want 2.00", got)
	}
	// Rounding happens on hours, so total price is rate * total hours.
	wantPrice := decimal.NewFromInt(80).Mul(inv.TotalHours)
	if !inv.TotalPrice.Equal(wantPrice) {
		t.Errorf("total price: got %s, want %s", inv.TotalPrice, wantPrice)
	}
}

func TestBuildInvoiceEmpty(t *testing.T) {
	inv := BuildInvoice(nil, 100)
	if len(inv.Lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(inv.Lines))
	}
	if inv.Deviation.Sign() != 0 {
		t.Errorf("deviation: got %s, want 0", inv.Deviation)
	}
	if !inv.TotalPrice.IsZero() {
		t.Errorf("total price: got %s, want 0", inv.TotalPrice)
	}
}
