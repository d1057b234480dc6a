package model

import "time"

// Tenant is a read-only row from the property-management tenant directory.
// The messaging service only resolves recipients from it; it never writes.
type Tenant struct {
	ID           int64     `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Phone        string    `db:"phone" json:"phone"`
	UnitNumber   string    `db:"unit_number" json:"unit_number"`
	ExpectedRent float64   `db:"expected_rent" json:"expected_rent"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
