package services

import (
	"fmt"
	"time"

	"github.com/staffdesk/employee-directory-backend/internal/models"
)

// StatisticsRepository provides the aggregate queries behind the
// statistics endpoint
type StatisticsRepository interface {
	MaxSalaryPerDepartment() ([]models.DepartmentSalary, error)
	SalaryHistogram() ([]models.SalaryBucket, error)
	YoungestPerDepartment() ([]models.YoungestEmployee, error)
}

// Statistics is the aggregate payload of GET /statistics
type Statistics struct {
	SalaryByDept     []models.DepartmentSalary `json:"salaryByDept"`
	SalaryRangeCount []models.SalaryBucket     `json:"salaryRangeCount"`
	EmployeesWithAge []models.EmployeeAge      `json:"employeesWithAge"`
}

// StatisticsService assembles employee statistics from the repository
// aggregates
type StatisticsService struct {
	repo StatisticsRepository
	now  func() time.Time
}

// NewStatisticsService creates a statistics service using the system clock
func NewStatisticsService(repo StatisticsRepository) *StatisticsService {
	return &StatisticsService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the clock used for age computation. Tests use this to
// pin "now".
func (s *StatisticsService) WithClock(now func() time.Time) *StatisticsService {
	s.now = now
	return s
}

// Collect runs the three aggregate queries and computes the age of each
// department's youngest employee
func (s *StatisticsService) Collect() (*Statistics, error) {
	salaryByDept, err := s.repo.MaxSalaryPerDepartment()
	if err != nil {
		return nil, fmt.Errorf("failed to collect salary by department: %w", err)
	}

	salaryRanges, err := s.repo.SalaryHistogram()
	if err != nil {
		return nil, fmt.Errorf("failed to collect salary histogram: %w", err)
	}

	youngest, err := s.repo.YoungestPerDepartment()
	if err != nil {
		return nil, fmt.Errorf("failed to collect youngest employees: %w", err)
	}

	now := s.now()
	withAge := make([]models.EmployeeAge, 0, len(youngest))
	for _, emp := range youngest {
		withAge = append(withAge, models.EmployeeAge{
			DepartmentID: emp.DepartmentID,
			Name:         emp.Name,
			Age:          CalculateAge(emp.DOB, now),
		})
	}

	return &Statistics{
		SalaryByDept:     salaryByDept,
		SalaryRangeCount: salaryRanges,
		EmployeesWithAge: withAge,
	}, nil
}

// CalculateAge returns the whole-year age at now for someone born at dob.
// The year difference is decremented when now's month/day precede the birth
// month/day. A dob in the future yields a negative age; callers see it
// unmodified.
func CalculateAge(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
