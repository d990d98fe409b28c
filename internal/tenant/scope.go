package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every tenant-owned table carries a
// company_id column; repositories chain this scope instead of repeating the
// where clause.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
