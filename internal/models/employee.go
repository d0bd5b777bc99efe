package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Employee statuses
const (
	EmployeeStatusActive    = "active"
	EmployeeStatusInactive  = "inactive"
	EmployeeStatusSuspended = "suspended"
)

// NullString wraps sql.NullString to provide proper JSON marshaling
type NullString struct {
	sql.NullString
}

// MarshalJSON implements json.Marshaler
func (ns NullString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.String)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements json.Unmarshaler
func (ns *NullString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s != nil {
		ns.Valid = true
		ns.String = *s
	} else {
		ns.Valid = false
	}
	return nil
}

// Employee represents an employee record. The phone number is persisted as a
// one-way bcrypt hash and never leaves the API.
type Employee struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	DepartmentID uuid.UUID  `json:"department_id" db:"department_id"`
	Name         string     `json:"name" db:"name"`
	DOB          time.Time  `json:"dob" db:"dob"`
	PhoneHash    string     `json:"-" db:"phone_hash"`
	Photo        NullString `json:"photo,omitempty" db:"photo"`
	Email        string     `json:"email" db:"email"`
	Salary       float64    `json:"salary" db:"salary"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// IsValidEmployeeStatus reports whether s is one of the three allowed values
func IsValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusSuspended:
		return true
	}
	return false
}

// PhoneHashRecord is the projection used by the duplicate-phone scan
type PhoneHashRecord struct {
	ID        uuid.UUID `db:"id"`
	PhoneHash string    `db:"phone_hash"`
}

// CreateEmployeeRequest is the payload for POST /add-employee
type CreateEmployeeRequest struct {
	DepartmentID string   `json:"department_id"`
	Name         string   `json:"name"`
	DOB          string   `json:"dob"`
	Phone        string   `json:"phone"`
	Photo        *string  `json:"photo"`
	Email        string   `json:"email"`
	Salary       *float64 `json:"salary"`
	Status       string   `json:"status"`
}

// HasAllRequiredFields reports whether every mandatory field is present.
// Photo is the only optional field.
func (r *CreateEmployeeRequest) HasAllRequiredFields() bool {
	return r.DepartmentID != "" &&
		r.Name != "" &&
		r.DOB != "" &&
		r.Phone != "" &&
		r.Email != "" &&
		r.Salary != nil &&
		r.Status != ""
}

// UpdateEmployeeRequest is the payload for PUT /employee/:id. Only non-nil
// fields are applied; everything else is left untouched.
type UpdateEmployeeRequest struct {
	DepartmentID *string  `json:"department_id"`
	Name         *string  `json:"name"`
	DOB          *string  `json:"dob"`
	Phone        *string  `json:"phone"`
	Photo        *string  `json:"photo"`
	Email        *string  `json:"email"`
	Salary       *float64 `json:"salary"`
	Status       *string  `json:"status"`
}

// IsEmpty reports whether the update carries no fields at all
func (r *UpdateEmployeeRequest) IsEmpty() bool {
	return r.DepartmentID == nil &&
		r.Name == nil &&
		r.DOB == nil &&
		r.Phone == nil &&
		r.Photo == nil &&
		r.Email == nil &&
		r.Salary == nil &&
		r.Status == nil
}

// DepartmentSalary is one row of the max-salary-per-department aggregate
type DepartmentSalary struct {
	DepartmentID  uuid.UUID `json:"department_id" db:"department_id"`
	HighestSalary float64   `json:"highestSalary" db:"highest_salary"`
}

// SalaryBucket is one row of the salary-range histogram.
// Buckets are [0,50000], (50000,100000] and (100000,inf).
type SalaryBucket struct {
	Bucket string `json:"bucket" db:"bucket"`
	Count  int    `json:"count" db:"count"`
}

// YoungestEmployee is one row of the youngest-per-department aggregate
type YoungestEmployee struct {
	DepartmentID uuid.UUID `json:"department_id" db:"department_id"`
	Name         string    `json:"name" db:"name"`
	DOB          time.Time `json:"dob" db:"dob"`
}

// EmployeeAge pairs the youngest employee of a department with their
// computed age in whole years
type EmployeeAge struct {
	DepartmentID uuid.UUID `json:"department_id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
}
