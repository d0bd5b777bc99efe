package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/staffdesk/employee-directory-backend/internal/database"
	"github.com/staffdesk/employee-directory-backend/internal/models"
)

// DepartmentHandler serves the department endpoints
type DepartmentHandler struct {
	deptRepo *database.DepartmentRepository
	logger   *logrus.Logger
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(deptRepo *database.DepartmentRepository, logger *logrus.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		deptRepo: deptRepo,
		logger:   logger,
	}
}

// CreateDepartment creates a new department
// POST /api/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req models.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if req.Name == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	if !models.IsValidDepartmentStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be active or inactive"})
		return
	}

	// Department names are globally unique
	if _, err := h.deptRepo.GetByName(req.Name); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Department name already in use"})
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.respondStoreError(c, "check department name", err)
		return
	}

	department, err := h.deptRepo.Create(req.Name, req.Status)
	if err != nil {
		h.respondStoreError(c, "create department", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    department,
		"message": "Department added successfully",
	})
}

// ListDepartments retrieves all departments
// GET /api/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.deptRepo.List()
	if err != nil {
		h.respondStoreError(c, "list departments", err)
		return
	}

	if departments == nil {
		departments = []*models.Department{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    departments,
	})
}

func (h *DepartmentHandler) respondStoreError(c *gin.Context, operation string, err error) {
	h.logger.WithFields(logrus.Fields{
		"operation": operation,
		"path":      c.Request.URL.Path,
	}).WithError(err).Error("Store operation failed")

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
