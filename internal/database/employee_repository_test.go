package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockDB creates a sqlmock-backed DB for repository tests
func setupMockDB(t *testing.T) (DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return &PostgresDB{DB: sqlxDB}, mock, func() { sqlxDB.Close() }
}

var employeeTestColumns = []string{
	"id", "department_id", "name", "dob", "phone_hash", "photo",
	"email", "salary", "status", "created_at", "updated_at",
}

func TestCreateEmployee(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	t.Run("Success", func(t *testing.T) {
		deptID := uuid.New()
		dob := time.Date(1995, 3, 20, 0, 0, 0, 0, time.UTC)

		mock.ExpectExec(`INSERT INTO employees`).
			WithArgs(
				sqlmock.AnyArg(), deptID, "Amara Silva", dob, sqlmock.AnyArg(), sqlmock.AnyArg(),
				"amara@example.com", 75000.0, "active", sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		emp, err := repo.Create(NewEmployee{
			DepartmentID: deptID,
			Name:         "Amara Silva",
			DOB:          dob,
			PhoneHash:    "$2a$10$somehash",
			Email:        "amara@example.com",
			Salary:       75000,
			Status:       "active",
		})
		require.NoError(t, err)
		assert.NotNil(t, emp)
		assert.NotEqual(t, uuid.Nil, emp.ID)
		assert.Equal(t, "amara@example.com", emp.Email)
		assert.Equal(t, deptID, emp.DepartmentID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO employees`).
			WillReturnError(fmt.Errorf("database error"))

		emp, err := repo.Create(NewEmployee{Name: "broken"})
		assert.Error(t, err)
		assert.Nil(t, emp)
		assert.Contains(t, err.Error(), "failed to create employee")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListEmployees(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	t.Run("Second page skips exactly one page of records", func(t *testing.T) {
		empID := uuid.New()
		deptID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM employees ORDER BY created_at ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 10).
			WillReturnRows(sqlmock.NewRows(employeeTestColumns).AddRow(
				empID, deptID, "Amara Silva", now.AddDate(-30, 0, 0), "$2a$10$hash", nil,
				"amara@example.com", 75000.0, "active", now, now,
			))

		employees, err := repo.List(2, 10)
		require.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, empID, employees[0].ID)
		assert.False(t, employees[0].Photo.Valid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("First page starts at offset zero", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM employees ORDER BY created_at ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(employeeTestColumns))

		employees, err := repo.List(1, 10)
		require.NoError(t, err)
		assert.Empty(t, employees)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM employees`).
			WillReturnError(fmt.Errorf("database error"))

		employees, err := repo.List(1, 10)
		assert.Error(t, err)
		assert.Nil(t, employees)
		assert.Contains(t, err.Error(), "failed to list employees")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetEmployeeByID(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	t.Run("Success", func(t *testing.T) {
		empID := uuid.New()
		deptID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM employees WHERE id`).
			WithArgs(empID).
			WillReturnRows(sqlmock.NewRows(employeeTestColumns).AddRow(
				empID, deptID, "Bilal Perera", now.AddDate(-25, 0, 0), "$2a$10$hash", "https://cdn/photo.jpg",
				"bilal@example.com", 48000.0, "inactive", now, now,
			))

		emp, err := repo.GetByID(empID)
		require.NoError(t, err)
		assert.Equal(t, empID, emp.ID)
		assert.Equal(t, "Bilal Perera", emp.Name)
		assert.True(t, emp.Photo.Valid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		empID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM employees WHERE id`).
			WithArgs(empID).
			WillReturnError(sql.ErrNoRows)

		emp, err := repo.GetByID(empID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, emp)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetEmployeeByEmail(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	t.Run("Success", func(t *testing.T) {
		empID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM employees WHERE email`).
			WithArgs("amara@example.com").
			WillReturnRows(sqlmock.NewRows(employeeTestColumns).AddRow(
				empID, uuid.New(), "Amara Silva", now.AddDate(-30, 0, 0), "$2a$10$hash", nil,
				"amara@example.com", 75000.0, "active", now, now,
			))

		emp, err := repo.GetByEmail("amara@example.com")
		require.NoError(t, err)
		assert.Equal(t, empID, emp.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM employees WHERE email`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		emp, err := repo.GetByEmail("nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, emp)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListPhoneHashes(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	first := uuid.New()
	second := uuid.New()

	mock.ExpectQuery(`SELECT id, phone_hash FROM employees`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone_hash"}).
			AddRow(first, "$2a$10$hash1").
			AddRow(second, "$2a$10$hash2"))

	records, err := repo.ListPhoneHashes()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, "$2a$10$hash2", records[1].PhoneHash)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployee(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	t.Run("Partial update writes only supplied fields", func(t *testing.T) {
		empID := uuid.New()
		deptID := uuid.New()
		now := time.Now()
		name := "Renamed Employee"
		salary := 82000.0

		mock.ExpectQuery(`UPDATE employees SET name = \$1, salary = \$2, updated_at = \$3 WHERE id = \$4 RETURNING`).
			WithArgs(name, salary, sqlmock.AnyArg(), empID).
			WillReturnRows(sqlmock.NewRows(employeeTestColumns).AddRow(
				empID, deptID, name, now.AddDate(-30, 0, 0), "$2a$10$hash", nil,
				"amara@example.com", salary, "active", now, now,
			))

		emp, err := repo.Update(empID, EmployeeUpdate{Name: &name, Salary: &salary})
		require.NoError(t, err)
		assert.Equal(t, name, emp.Name)
		assert.Equal(t, salary, emp.Salary)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		empID := uuid.New()
		name := "Ghost"

		mock.ExpectQuery(`UPDATE employees SET`).
			WillReturnError(sql.ErrNoRows)

		emp, err := repo.Update(empID, EmployeeUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, emp)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteEmployee(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	t.Run("Success", func(t *testing.T) {
		empID := uuid.New()

		mock.ExpectExec(`DELETE FROM employees WHERE id`).
			WithArgs(empID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(empID)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		empID := uuid.New()

		mock.ExpectExec(`DELETE FROM employees WHERE id`).
			WithArgs(empID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(empID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMaxSalaryPerDepartment(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	deptA := uuid.New()
	deptB := uuid.New()

	mock.ExpectQuery(`SELECT department_id, MAX\(salary\) AS highest_salary FROM employees GROUP BY department_id`).
		WillReturnRows(sqlmock.NewRows([]string{"department_id", "highest_salary"}).
			AddRow(deptA, 120000.0).
			AddRow(deptB, 45000.0))

	rows, err := repo.MaxSalaryPerDepartment()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, deptA, rows[0].DepartmentID)
	assert.Equal(t, 120000.0, rows[0].HighestSalary)
	assert.Equal(t, 45000.0, rows[1].HighestSalary)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalaryHistogram(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	// Salaries 0 and 50000 land in the first bucket, 50001 and 100000 in
	// the second, 100001 in the open-ended top bucket
	mock.ExpectQuery(`SELECT\s+CASE`).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "count"}).
			AddRow("0-50000", 2).
			AddRow("50001-100000", 2).
			AddRow("100000+", 1))

	rows, err := repo.SalaryHistogram()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	total := 0
	for _, bucket := range rows {
		total += bucket.Count
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, "100000+", rows[2].Bucket)
	assert.Equal(t, 1, rows[2].Count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestYoungestPerDepartment(t *testing.T) {
	db, mock, closeDB := setupMockDB(t)
	defer closeDB()

	repo := NewEmployeeRepository(db)

	deptA := uuid.New()
	dob := time.Date(2001, 8, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT DISTINCT ON \(department_id\) department_id, name, dob FROM employees`).
		WillReturnRows(sqlmock.NewRows([]string{"department_id", "name", "dob"}).
			AddRow(deptA, "Amara Silva", dob))

	rows, err := repo.YoungestPerDepartment()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, deptA, rows[0].DepartmentID)
	assert.Equal(t, "Amara Silva", rows[0].Name)
	assert.True(t, dob.Equal(rows[0].DOB))

	assert.NoError(t, mock.ExpectationsWereMet())
}
