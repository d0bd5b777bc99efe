package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/staffdesk/employee-directory-backend/internal/config"
	"github.com/staffdesk/employee-directory-backend/internal/database"
	"github.com/staffdesk/employee-directory-backend/internal/models"
	"github.com/staffdesk/employee-directory-backend/internal/services"
	"github.com/staffdesk/employee-directory-backend/pkg/validator"
)

// dobLayout is the accepted date-of-birth format
const dobLayout = "2006-01-02"

// EmployeeHandler serves the employee CRUD and statistics endpoints
type EmployeeHandler struct {
	empRepo    *database.EmployeeRepository
	deptRepo   *database.DepartmentRepository
	phoneGuard *services.PhoneGuard
	stats      *services.StatisticsService
	validator  *validator.RecordValidator
	pagination config.PaginationConfig
	logger     *logrus.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(
	empRepo *database.EmployeeRepository,
	deptRepo *database.DepartmentRepository,
	phoneGuard *services.PhoneGuard,
	stats *services.StatisticsService,
	pagination config.PaginationConfig,
	logger *logrus.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		empRepo:    empRepo,
		deptRepo:   deptRepo,
		phoneGuard: phoneGuard,
		stats:      stats,
		validator:  validator.NewRecordValidator(),
		pagination: pagination,
		logger:     logger,
	}
}

// Welcome is the API root banner
// GET /api/
func (h *EmployeeHandler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Employee API")
}

// ListEmployees retrieves employees with pagination
// GET /api/all-employees?page=&limit=
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	page := h.parsePagingParam(c.Query("page"), 1)
	limit := h.parsePagingParam(c.Query("limit"), h.pagination.DefaultLimit)
	if limit > h.pagination.MaxLimit {
		limit = h.pagination.MaxLimit
	}

	employees, err := h.empRepo.List(page, limit)
	if err != nil {
		h.respondStoreError(c, "list employees", err)
		return
	}

	if employees == nil {
		employees = []*models.Employee{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employees,
	})
}

// parsePagingParam clamps an untrusted paging parameter: non-numeric or
// non-positive values fall back to the given default.
func (h *EmployeeHandler) parsePagingParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// AddEmployee creates a new employee
// POST /api/add-employee
func (h *EmployeeHandler) AddEmployee(c *gin.Context) {
	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Ordering: presence -> format -> duplicate phone -> duplicate email
	if !req.HasAllRequiredFields() {
		h.respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	if !h.validator.IsValidPhone(req.Phone) {
		h.respondError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if !h.validator.IsValidEmail(req.Email) {
		h.respondError(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	if !h.validator.IsValidDate(req.DOB) {
		h.respondError(c, http.StatusBadRequest, "Invalid DOB format. Use YYYY-MM-DD.")
		return
	}

	dob, err := time.Parse(dobLayout, req.DOB)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "DOB is not a valid calendar date")
		return
	}

	if !models.IsValidEmployeeStatus(req.Status) {
		h.respondError(c, http.StatusBadRequest, "Status must be active, inactive or suspended")
		return
	}

	if *req.Salary < 0 {
		h.respondError(c, http.StatusBadRequest, "Salary must be non-negative")
		return
	}

	deptID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid department ID")
		return
	}

	if _, err := h.deptRepo.GetByID(deptID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(c, http.StatusBadRequest, "Department does not exist")
			return
		}
		h.respondStoreError(c, "check department", err)
		return
	}

	duplicate, err := h.phoneGuard.IsDuplicate(req.Phone)
	if err != nil {
		h.respondStoreError(c, "check duplicate phone", err)
		return
	}
	if duplicate {
		h.respondError(c, http.StatusBadRequest, "Phone number already in use")
		return
	}

	if _, err := h.empRepo.GetByEmail(req.Email); err == nil {
		h.respondError(c, http.StatusBadRequest, "Email already in use")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.respondStoreError(c, "check duplicate email", err)
		return
	}

	phoneHash, err := h.phoneGuard.Hash(req.Phone)
	if err != nil {
		h.respondStoreError(c, "hash phone", err)
		return
	}

	var photo models.NullString
	if req.Photo != nil {
		photo.Valid = true
		photo.String = *req.Photo
	}

	employee, err := h.empRepo.Create(database.NewEmployee{
		DepartmentID: deptID,
		Name:         req.Name,
		DOB:          dob,
		PhoneHash:    phoneHash,
		Photo:        photo,
		Email:        req.Email,
		Salary:       *req.Salary,
		Status:       req.Status,
	})
	if err != nil {
		h.respondStoreError(c, "create employee", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    employee,
		"message": "Employee added successfully",
	})
}

// GetEmployee retrieves a single employee by ID
// GET /api/employee/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	employee, err := h.empRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(c, http.StatusNotFound, "Employee not found")
			return
		}
		h.respondStoreError(c, "get employee", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employee,
	})
}

// UpdateEmployee applies a partial update to an employee
// PUT /api/employee/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var req models.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IsEmpty() {
		h.respondError(c, http.StatusBadRequest, "At least one field is required")
		return
	}

	if _, err := h.empRepo.GetByID(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(c, http.StatusNotFound, "Employee not found")
			return
		}
		h.respondStoreError(c, "get employee", err)
		return
	}

	upd := database.EmployeeUpdate{
		Name:  req.Name,
		Photo: req.Photo,
	}

	if req.Phone != nil {
		if !h.validator.IsValidPhone(*req.Phone) {
			h.respondError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}

		duplicate, err := h.phoneGuard.IsDuplicateExcluding(*req.Phone, id)
		if err != nil {
			h.respondStoreError(c, "check duplicate phone", err)
			return
		}
		if duplicate {
			h.respondError(c, http.StatusBadRequest, "Phone number already in use")
			return
		}

		phoneHash, err := h.phoneGuard.Hash(*req.Phone)
		if err != nil {
			h.respondStoreError(c, "hash phone", err)
			return
		}
		upd.PhoneHash = &phoneHash
	}

	if req.Email != nil {
		if !h.validator.IsValidEmail(*req.Email) {
			h.respondError(c, http.StatusBadRequest, "Invalid email format")
			return
		}

		existing, err := h.empRepo.GetByEmail(*req.Email)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			h.respondStoreError(c, "check duplicate email", err)
			return
		}
		if existing != nil && existing.ID != id {
			h.respondError(c, http.StatusBadRequest, "Email already in use")
			return
		}
		upd.Email = req.Email
	}

	if req.DOB != nil {
		if !h.validator.IsValidDate(*req.DOB) {
			h.respondError(c, http.StatusBadRequest, "Invalid DOB format. Use YYYY-MM-DD.")
			return
		}
		dob, err := time.Parse(dobLayout, *req.DOB)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "DOB is not a valid calendar date")
			return
		}
		upd.DOB = &dob
	}

	if req.Status != nil {
		if !models.IsValidEmployeeStatus(*req.Status) {
			h.respondError(c, http.StatusBadRequest, "Status must be active, inactive or suspended")
			return
		}
		upd.Status = req.Status
	}

	if req.Salary != nil {
		if *req.Salary < 0 {
			h.respondError(c, http.StatusBadRequest, "Salary must be non-negative")
			return
		}
		upd.Salary = req.Salary
	}

	if req.DepartmentID != nil {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid department ID")
			return
		}
		if _, err := h.deptRepo.GetByID(deptID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				h.respondError(c, http.StatusBadRequest, "Department does not exist")
				return
			}
			h.respondStoreError(c, "check department", err)
			return
		}
		upd.DepartmentID = &deptID
	}

	employee, err := h.empRepo.Update(id, upd)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(c, http.StatusNotFound, "Employee not found")
			return
		}
		h.respondStoreError(c, "update employee", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    employee,
		"message": "Employee updated successfully",
	})
}

// DeleteEmployee removes an employee
// DELETE /api/employee/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if err := h.empRepo.Delete(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(c, http.StatusNotFound, "Employee not found")
			return
		}
		h.respondStoreError(c, "delete employee", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Employee deleted successfully",
	})
}

// GetStatistics serves the aggregate statistics
// GET /api/statistics
func (h *EmployeeHandler) GetStatistics(c *gin.Context) {
	stats, err := h.stats.Collect()
	if err != nil {
		h.respondStoreError(c, "collect statistics", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"salaryByDept":     stats.SalaryByDept,
		"salaryRangeCount": stats.SalaryRangeCount,
		"employeesWithAge": stats.EmployeesWithAge,
	})
}

// respondError sends a structured client-error body
func (h *EmployeeHandler) respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondStoreError logs the underlying failure and returns a generic 500.
// Raw store errors are never exposed to clients.
func (h *EmployeeHandler) respondStoreError(c *gin.Context, operation string, err error) {
	h.logger.WithFields(logrus.Fields{
		"operation": operation,
		"path":      c.Request.URL.Path,
	}).WithError(err).Error("Store operation failed")

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
