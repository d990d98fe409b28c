package bankfile

import "github.com/shopspring/decimal"

// RecordView is the slice of a payroll record the generator needs. The
// caller passes the snapshot it already fetched; grouping never goes back to
// the store, so the generated file always matches what the operator saw.
type RecordView struct {
	RecordID   string
	EmployeeID string
	NetPay     decimal.Decimal
	Reference  string
}

// EmployeeView is the bank-relevant slice of an employee record.
type EmployeeView struct {
	EmployeeID    string
	FullName      string
	BankCode      string
	AccountNumber string
}

// TransferRecord is one resolved salary transfer line: a payroll record
// joined with the owning employee's bank details.
type TransferRecord struct {
	RecordID      string
	EmployeeID    string
	EmployeeName  string
	Bank          BankCode
	AccountNumber string
	Amount        decimal.Decimal
	Reference     string
}

// UnassignedRecord is a payroll record that cannot be routed to any
// supported bank. It is reported, never dropped: a silently dropped record
// is an employee who does not get paid with no audit trail.
type UnassignedRecord struct {
	Record TransferRecord
	Reason string
}

// Grouping partitions one run's records by bank. The union of all buckets
// plus Unassigned is exactly the input record set.
type Grouping struct {
	Buckets    map[BankCode][]TransferRecord
	Unassigned []UnassignedRecord
}

// BanksWithRecords returns the supported banks that have at least one
// record, in presentation order. Banks with an empty bucket are simply not
// part of a generation round.
func (g Grouping) BanksWithRecords() []BankCode {
	banks := make([]BankCode, 0, len(g.Buckets))
	for _, bank := range SupportedBanks() {
		if len(g.Buckets[bank]) > 0 {
			banks = append(banks, bank)
		}
	}
	return banks
}

// GroupRecordsByBank resolves each payroll record to its employee's bank and
// buckets it. Records whose employee is missing, has no account number, or
// carries an unsupported bank code land in the unassigned bucket with a
// reason the operator can act on.
func GroupRecordsByBank(records []RecordView, employees []EmployeeView) Grouping {
	byID := make(map[string]EmployeeView, len(employees))
	for _, emp := range employees {
		byID[emp.EmployeeID] = emp
	}

	grouping := Grouping{Buckets: make(map[BankCode][]TransferRecord)}

	for _, record := range records {
		transfer := TransferRecord{
			RecordID:   record.RecordID,
			EmployeeID: record.EmployeeID,
			Amount:     record.NetPay,
			Reference:  record.Reference,
		}

		emp, found := byID[record.EmployeeID]
		if !found {
			grouping.Unassigned = append(grouping.Unassigned, UnassignedRecord{
				Record: transfer,
				Reason: "employee not found for payroll record",
			})
			continue
		}

		transfer.EmployeeName = emp.FullName
		transfer.AccountNumber = emp.AccountNumber

		bank, ok := ParseBankCode(emp.BankCode)
		if !ok {
			reason := "employee has no bank code"
			if emp.BankCode != "" {
				reason = "unsupported bank code: " + emp.BankCode
			}
			grouping.Unassigned = append(grouping.Unassigned, UnassignedRecord{
				Record: transfer,
				Reason: reason,
			})
			continue
		}

		transfer.Bank = bank
		grouping.Buckets[bank] = append(grouping.Buckets[bank], transfer)
	}

	return grouping
}
