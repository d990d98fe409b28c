package bankfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Per-bank layouts. Each builder returns the file bytes together with the
// sum of the amounts it actually wrote, so the caller can assert the batch
// total invariant against the emitted content, not against intent.

// BNU: comma-separated, one header row, detail rows, TOTAL trailer row.
// Amounts as plain decimals with two digits.
func buildBNUFile(req GenerateRequest, total decimal.Decimal) ([]byte, decimal.Decimal, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"BATCH", req.CompanyName, req.CompanyAccountNumber,
		req.ValueDate.Format("2006-01-02"),
		fmt.Sprintf("%d", len(req.Records)),
		total.StringFixed(2),
	}
	if err := w.Write(header); err != nil {
		return nil, decimal.Zero, err
	}

	lineTotal := decimal.Zero
	for _, record := range req.Records {
		amount := record.Amount.Round(2)
		row := []string{
			record.AccountNumber,
			record.EmployeeName,
			amount.StringFixed(2),
			record.Reference,
		}
		if err := w.Write(row); err != nil {
			return nil, decimal.Zero, err
		}
		lineTotal = lineTotal.Add(amount)
	}

	trailer := []string{"TOTAL", "", lineTotal.StringFixed(2), ""}
	if err := w.Write(trailer); err != nil {
		return nil, decimal.Zero, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, decimal.Zero, err
	}
	return buf.Bytes(), lineTotal, nil
}

// BNCTL: fixed-width records, 100 characters per line.
//
//	01 header  - company name (40), debit account (20), value date (8, YYYYMMDD)
//	02 detail  - account (20), employee name (40), amount in cents (13, zero padded), reference (23)
//	03 trailer - record count (6), batch total in cents (15)
func buildBNCTLFile(req GenerateRequest, total decimal.Decimal) ([]byte, decimal.Decimal, error) {
	var buf bytes.Buffer

	header := newFixedLine(100)
	header.put(1, 2, "01")
	header.put(3, 42, padRight(req.CompanyName, 40))
	header.put(43, 62, padRight(req.CompanyAccountNumber, 20))
	header.put(63, 70, req.ValueDate.Format("20060102"))
	buf.WriteString(header.String())
	buf.WriteByte('\n')

	lineTotal := decimal.Zero
	for _, record := range req.Records {
		amount := record.Amount.Round(2)
		line := newFixedLine(100)
		line.put(1, 2, "02")
		line.put(3, 22, padRight(record.AccountNumber, 20))
		line.put(23, 62, padRight(record.EmployeeName, 40))
		line.put(63, 75, zeroPadCents(amount, 13))
		line.put(76, 98, padRight(record.Reference, 23))
		buf.WriteString(line.String())
		buf.WriteByte('\n')
		lineTotal = lineTotal.Add(amount)
	}

	trailer := newFixedLine(100)
	trailer.put(1, 2, "03")
	trailer.put(3, 8, fmt.Sprintf("%06d", len(req.Records)))
	trailer.put(9, 23, zeroPadCents(lineTotal, 15))
	buf.WriteString(trailer.String())
	buf.WriteByte('\n')

	return buf.Bytes(), lineTotal, nil
}

// Mandiri: tab-separated detail lines with a pipe-prefixed trailer carrying
// the debit account, value date, count and total.
func buildMandiriFile(req GenerateRequest, total decimal.Decimal) ([]byte, decimal.Decimal, error) {
	var buf bytes.Buffer

	lineTotal := decimal.Zero
	for i, record := range req.Records {
		amount := record.Amount.Round(2)
		fmt.Fprintf(&buf, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			record.AccountNumber,
			strings.ToUpper(record.EmployeeName),
			amount.StringFixed(2),
			record.Reference,
		)
		lineTotal = lineTotal.Add(amount)
	}

	fmt.Fprintf(&buf, "|TRAILER|%s|%s|%d|%s|\n",
		req.CompanyAccountNumber,
		req.ValueDate.Format("02012006"),
		len(req.Records),
		lineTotal.StringFixed(2),
	)

	return buf.Bytes(), lineTotal, nil
}

// BRI: semicolon-separated with a numbered detail section, no quoting,
// header carries the debiting company account and value date.
func buildBRIFile(req GenerateRequest, total decimal.Decimal) ([]byte, decimal.Decimal, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "H;%s;%s;%s;%d;%s\n",
		req.CompanyAccountNumber,
		req.CompanyName,
		req.ValueDate.Format("20060102"),
		len(req.Records),
		total.StringFixed(2),
	)

	lineTotal := decimal.Zero
	for i, record := range req.Records {
		amount := record.Amount.Round(2)
		fmt.Fprintf(&buf, "D;%d;%s;%s;%s;%s\n",
			i+1,
			record.AccountNumber,
			record.EmployeeName,
			amount.StringFixed(2),
			record.Reference,
		)
		lineTotal = lineTotal.Add(amount)
	}

	return buf.Bytes(), lineTotal, nil
}

// fixedLine is a fixed-width record buffer with 1-based, inclusive column
// positions, the way the bank specs describe their layouts.
type fixedLine struct {
	data []byte
}

func newFixedLine(size int) *fixedLine {
	d := make([]byte, size)
	for i := range d {
		d[i] = ' '
	}
	return &fixedLine{data: d}
}

func (f *fixedLine) put(start, end int, s string) {
	copy(f.data[start-1:end], truncateBytes(s, end-start+1))
}

func (f *fixedLine) String() string { return string(f.data) }

// truncateBytes cuts s down to at most n bytes without splitting a rune.
// Field widths are byte widths, but names like "Conceição" must never leave
// a broken UTF-8 sequence in the file.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func padRight(s string, n int) string {
	s = truncateBytes(s, n)
	return s + strings.Repeat(" ", n-len(s))
}

// zeroPadCents renders an amount as an implied-decimal cents field,
// right-justified and zero-filled, e.g. 738.00 over 13 -> "0000000073800".
func zeroPadCents(amount decimal.Decimal, width int) string {
	cents := amount.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
	return fmt.Sprintf("%0*d", width, cents)
}
