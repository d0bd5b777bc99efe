package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/employee-directory-backend/internal/models"
)

// employeeColumns is the canonical column list for employee reads
const employeeColumns = `id, department_id, name, dob, phone_hash, photo, email, salary, status, created_at, updated_at`

// EmployeeRepository handles employee database operations
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{
		db: db,
	}
}

// NewEmployee carries the validated fields for an insert. The phone is
// expected to be hashed already; plaintext never reaches this layer.
type NewEmployee struct {
	DepartmentID uuid.UUID
	Name         string
	DOB          time.Time
	PhoneHash    string
	Photo        models.NullString
	Email        string
	Salary       float64
	Status       string
}

// EmployeeUpdate carries the fields of a partial update. Nil fields are
// left untouched.
type EmployeeUpdate struct {
	DepartmentID *uuid.UUID
	Name         *string
	DOB          *time.Time
	PhoneHash    *string
	Photo        *string
	Email        *string
	Salary       *float64
	Status       *string
}

// Create inserts a new employee and returns the persisted record
func (r *EmployeeRepository) Create(fields NewEmployee) (*models.Employee, error) {
	now := time.Now()
	emp := &models.Employee{
		ID:           uuid.New(),
		DepartmentID: fields.DepartmentID,
		Name:         fields.Name,
		DOB:          fields.DOB,
		PhoneHash:    fields.PhoneHash,
		Photo:        fields.Photo,
		Email:        fields.Email,
		Salary:       fields.Salary,
		Status:       fields.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO employees (
			id, department_id, name, dob, phone_hash, photo,
			email, salary, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(
		query,
		emp.ID,
		emp.DepartmentID,
		emp.Name,
		emp.DOB,
		emp.PhoneHash,
		emp.Photo,
		emp.Email,
		emp.Salary,
		emp.Status,
		emp.CreatedAt,
		emp.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// List retrieves employees with pagination. Callers are expected to pass
// sanitized page/limit values (>= 1); the offset is (page-1)*limit.
func (r *EmployeeRepository) List(page, limit int) ([]*models.Employee, error) {
	var employees []*models.Employee

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`, employeeColumns)

	offset := (page - 1) * limit
	err := r.db.Select(&employees, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(id uuid.UUID) (*models.Employee, error) {
	var emp models.Employee

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1
	`, employeeColumns)

	err := r.db.Get(&emp, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return &emp, nil
}

// GetByEmail retrieves an employee by email address
func (r *EmployeeRepository) GetByEmail(email string) (*models.Employee, error) {
	var emp models.Employee

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE email = $1
	`, employeeColumns)

	err := r.db.Get(&emp, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return &emp, nil
}

// ListPhoneHashes retrieves the id and phone hash of every employee. Used
// by the duplicate-phone scan, which must compare the candidate against
// every stored hash because equal phones do not produce equal hashes.
func (r *EmployeeRepository) ListPhoneHashes() ([]models.PhoneHashRecord, error) {
	var records []models.PhoneHashRecord

	query := `
		SELECT id, phone_hash
		FROM employees
	`

	err := r.db.Select(&records, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list phone hashes: %w", err)
	}

	return records, nil
}

// Update applies a partial update and returns the updated record. Only the
// non-nil fields of upd are written; updated_at is always refreshed.
func (r *EmployeeRepository) Update(id uuid.UUID, upd EmployeeUpdate) (*models.Employee, error) {
	setClauses := make([]string, 0, 9)
	args := make([]interface{}, 0, 10)

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.DepartmentID != nil {
		addSet("department_id", *upd.DepartmentID)
	}
	if upd.Name != nil {
		addSet("name", *upd.Name)
	}
	if upd.DOB != nil {
		addSet("dob", *upd.DOB)
	}
	if upd.PhoneHash != nil {
		addSet("phone_hash", *upd.PhoneHash)
	}
	if upd.Photo != nil {
		addSet("photo", *upd.Photo)
	}
	if upd.Email != nil {
		addSet("email", *upd.Email)
	}
	if upd.Salary != nil {
		addSet("salary", *upd.Salary)
	}
	if upd.Status != nil {
		addSet("status", *upd.Status)
	}
	addSet("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), employeeColumns)

	var emp models.Employee
	err := r.db.Get(&emp, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return &emp, nil
}

// Delete removes an employee by ID. Deletion is physical.
func (r *EmployeeRepository) Delete(id uuid.UUID) error {
	query := `
		DELETE FROM employees
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// MaxSalaryPerDepartment returns the highest salary in each department
func (r *EmployeeRepository) MaxSalaryPerDepartment() ([]models.DepartmentSalary, error) {
	var rows []models.DepartmentSalary

	query := `
		SELECT department_id, MAX(salary) AS highest_salary
		FROM employees
		GROUP BY department_id
		ORDER BY department_id
	`

	err := r.db.Select(&rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate salaries by department: %w", err)
	}

	return rows, nil
}

// SalaryHistogram counts employees per fixed salary range. Every employee
// falls into exactly one bucket, so the counts sum to the employee total.
func (r *EmployeeRepository) SalaryHistogram() ([]models.SalaryBucket, error) {
	var rows []models.SalaryBucket

	query := `
		SELECT
			CASE
				WHEN salary <= 50000 THEN '0-50000'
				WHEN salary <= 100000 THEN '50001-100000'
				ELSE '100000+'
			END AS bucket,
			COUNT(*) AS count
		FROM employees
		GROUP BY 1
		ORDER BY MIN(salary)
	`

	err := r.db.Select(&rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to build salary histogram: %w", err)
	}

	return rows, nil
}

// YoungestPerDepartment returns, per department, the employee with the
// earliest date of birth. Ties break on created_at ascending.
func (r *EmployeeRepository) YoungestPerDepartment() ([]models.YoungestEmployee, error) {
	var rows []models.YoungestEmployee

	query := `
		SELECT DISTINCT ON (department_id) department_id, name, dob
		FROM employees
		ORDER BY department_id, dob ASC, created_at ASC
	`

	err := r.db.Select(&rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find youngest employees: %w", err)
	}

	return rows, nil
}
