package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	invoicePrefix     = "INV"
	invoiceDateLayout = "02012006" // DDMMYYYY
)

var ErrMalformedInvoice = errors.New("malformed invoice number")

// InvoiceDay truncates t to its calendar day in loc. The result is midnight UTC
// of that date so it can key a DATE column regardless of the session time zone.
func InvoiceDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatInvoiceNumber renders INV{DDMMYYYY}-{SEQ}. SEQ is zero-padded to three
// digits and grows naturally past 999.
func FormatInvoiceNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s-%03d", invoicePrefix, day.Format(invoiceDateLayout), seq)
}

// ParseInvoiceNumber splits an invoice number into its day and numeric sequence.
// Sequences must be compared with the returned integer, never as text.
func ParseInvoiceNumber(s string) (time.Time, int64, error) {
	rest, ok := strings.CutPrefix(s, invoicePrefix)
	if !ok {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrMalformedInvoice, s)
	}
	datePart, seqPart, ok := strings.Cut(rest, "-")
	if !ok || len(datePart) != len(invoiceDateLayout) || len(seqPart) < 3 {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrMalformedInvoice, s)
	}
	day, err := time.Parse(invoiceDateLayout, datePart)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrMalformedInvoice, s)
	}
	seq, err := strconv.ParseInt(seqPart, 10, 64)
	if err != nil || seq < 1 {
		return time.Time{}, 0, fmt.Errorf("%w: %q", ErrMalformedInvoice, s)
	}
	return day, seq, nil
}
