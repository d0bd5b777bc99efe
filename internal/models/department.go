package models

import (
	"time"

	"github.com/google/uuid"
)

// Department statuses
const (
	DepartmentStatusActive   = "active"
	DepartmentStatusInactive = "inactive"
)

// Department represents a department. Names are globally unique.
type Department struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsValidDepartmentStatus reports whether s is one of the two allowed values
func IsValidDepartmentStatus(s string) bool {
	return s == DepartmentStatusActive || s == DepartmentStatusInactive
}

// CreateDepartmentRequest is the payload for POST /departments
type CreateDepartmentRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
