package bankfile

// BankCode identifies one of the banks we can emit a salary transfer file
// for. The set is closed: anything else ends up in the unassigned bucket
// instead of silently producing a file nobody can import.
type BankCode string

const (
	BankBNU     BankCode = "BNU"     // Banco Nacional Ultramarino
	BankBNCTL   BankCode = "BNCTL"   // Banco Nacional de Comércio de Timor-Leste
	BankMandiri BankCode = "MANDIRI" // Bank Mandiri, Dili branch
	BankBRI     BankCode = "BRI"     // Bank Rakyat Indonesia, Dili branch
)

// SupportedBanks lists every bank a transfer file can be generated for, in
// the order the UI presents them.
func SupportedBanks() []BankCode {
	return []BankCode{BankBNU, BankBNCTL, BankMandiri, BankBRI}
}

func (b BankCode) Supported() bool {
	switch b {
	case BankBNU, BankBNCTL, BankMandiri, BankBRI:
		return true
	default:
		return false
	}
}

// ParseBankCode normalizes a stored bank code string. The second return is
// false for blank or unknown codes.
func ParseBankCode(v string) (BankCode, bool) {
	code := BankCode(v)
	if code.Supported() {
		return code, true
	}
	return "", false
}
