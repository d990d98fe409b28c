package bankfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GenerateRequest carries everything one bank file needs. Records must all
// belong to the requested bank's bucket; the company fields identify the
// debiting account the bank will pull the batch from.
type GenerateRequest struct {
	RunNumber            string
	PeriodLabel          string // e.g. 2026-08
	ValueDate            time.Time
	CompanyName          string
	CompanyAccountNumber string
	Records              []TransferRecord
}

// BankFileResult is the finished, in-memory artifact. It is never persisted;
// it lives exactly as long as the download the caller hands it to.
type BankFileResult struct {
	Bank        BankCode
	Content     []byte
	Filename    string
	RecordCount int
	Total       decimal.Decimal
}

// Generate serializes one bank's records into that bank's import layout.
// All validation happens before a single byte is produced: a half-written
// transfer file is worse than no file, because an incomplete debit account
// or total can move real money to the wrong place.
func Generate(bank BankCode, req GenerateRequest) (BankFileResult, error) {
	if !bank.Supported() {
		return BankFileResult{}, fmt.Errorf("unsupported bank code %q", bank)
	}
	if strings.TrimSpace(req.CompanyAccountNumber) == "" {
		return BankFileResult{}, fmt.Errorf("company account number is required for bank %s", bank)
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return BankFileResult{}, fmt.Errorf("company name is required for bank %s", bank)
	}
	if req.ValueDate.IsZero() {
		return BankFileResult{}, fmt.Errorf("value date is required for bank %s", bank)
	}
	if len(req.Records) == 0 {
		return BankFileResult{}, fmt.Errorf("no payroll records for bank %s", bank)
	}

	total := decimal.Zero
	for _, record := range req.Records {
		if record.Bank != bank {
			return BankFileResult{}, fmt.Errorf("record %s belongs to bank %s, not %s", record.RecordID, record.Bank, bank)
		}
		if strings.TrimSpace(record.AccountNumber) == "" {
			return BankFileResult{}, fmt.Errorf("employee %s has no account number", record.EmployeeID)
		}
		if !record.Amount.IsPositive() {
			return BankFileResult{}, fmt.Errorf("employee %s has non-positive transfer amount %s", record.EmployeeID, record.Amount)
		}
		total = total.Add(record.Amount.Round(2))
	}

	var (
		content   []byte
		lineTotal decimal.Decimal
		ext       string
		err       error
	)
	switch bank {
	case BankBNU:
		content, lineTotal, err = buildBNUFile(req, total)
		ext = "csv"
	case BankBNCTL:
		content, lineTotal, err = buildBNCTLFile(req, total)
		ext = "txt"
	case BankMandiri:
		content, lineTotal, err = buildMandiriFile(req, total)
		ext = "txt"
	case BankBRI:
		content, lineTotal, err = buildBRIFile(req, total)
		ext = "csv"
	}
	if err != nil {
		return BankFileResult{}, err
	}

	// Invariant check: the amounts actually written must add up to the
	// batch total written in the header/trailer.
	if !lineTotal.Equal(total) {
		return BankFileResult{}, fmt.Errorf("bank %s file total %s does not match record total %s", bank, lineTotal, total)
	}

	filename := fmt.Sprintf("%s_salary_%s_%s.%s",
		strings.ToLower(string(bank)),
		req.PeriodLabel,
		req.ValueDate.Format("20060102"),
		ext,
	)

	return BankFileResult{
		Bank:        bank,
		Content:     content,
		Filename:    filename,
		RecordCount: len(req.Records),
		Total:       total,
	}, nil
}
