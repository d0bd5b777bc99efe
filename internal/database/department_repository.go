package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/employee-directory-backend/internal/models"
)

// DepartmentRepository handles department database operations
type DepartmentRepository struct {
	db DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db DB) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Create inserts a new department and returns the persisted record
func (r *DepartmentRepository) Create(name, status string) (*models.Department, error) {
	now := time.Now()
	dept := &models.Department{
		ID:        uuid.New(),
		Name:      name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO departments (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query, dept.ID, dept.Name, dept.Status, dept.CreatedAt, dept.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return dept, nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(id uuid.UUID) (*models.Department, error) {
	var dept models.Department

	query := `
		SELECT id, name, status, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	err := r.db.Get(&dept, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get department by ID: %w", err)
	}

	return &dept, nil
}

// GetByName retrieves a department by its unique name
func (r *DepartmentRepository) GetByName(name string) (*models.Department, error) {
	var dept models.Department

	query := `
		SELECT id, name, status, created_at, updated_at
		FROM departments
		WHERE name = $1
	`

	err := r.db.Get(&dept, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get department by name: %w", err)
	}

	return &dept, nil
}

// List retrieves all departments
func (r *DepartmentRepository) List() ([]*models.Department, error) {
	var departments []*models.Department

	query := `
		SELECT id, name, status, created_at, updated_at
		FROM departments
		ORDER BY created_at ASC
	`

	err := r.db.Select(&departments, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return departments, nil
}
