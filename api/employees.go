package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/skillsmatch/go-skillsmatch/session"
)

// EmploymentStatus is an employee's standing in the organisation.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "ACTIVE"
	EmploymentOnLeave    EmploymentStatus = "ON_LEAVE"
	EmploymentSuspended  EmploymentStatus = "SUSPENDED"
	EmploymentTerminated EmploymentStatus = "TERMINATED"
)

// Employee is a member of the organisation. Dates use the backend's
// ISO-8601 date format (YYYY-MM-DD).
type Employee struct {
	ID               int              `json:"id,omitempty"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Email            string           `json:"email"`
	PhoneNumber      *string          `json:"phone_number,omitempty"`
	HireDate         string           `json:"hire_date"`
	DateOfBirth      string           `json:"date_of_birth"`
	CurrentPosition  *int             `json:"current_position,omitempty"`
	EmploymentStatus EmploymentStatus `json:"employment_status,omitempty"`
	ProfilePicture   *string          `json:"profile_picture,omitempty"`
	Resume           *string          `json:"resume,omitempty"`
	LastUpdated      string           `json:"last_updated,omitempty"`
	CustomFields     CustomFields     `json:"custom_fields,omitempty"`
}

// EmployeesService covers the /employees/ endpoints.
type EmployeesService struct {
	d Doer
}

func (s *EmployeesService) List(ctx context.Context, opts *ListOptions) (*Page[Employee], error) {
	return list[Employee](ctx, s.d, "/employees/", opts)
}

func (s *EmployeesService) Get(ctx context.Context, id int) (*Employee, error) {
	return get[Employee](ctx, s.d, idPath("employees", id), nil)
}

func (s *EmployeesService) Create(ctx context.Context, employee *Employee) (*Employee, error) {
	return create[Employee](ctx, s.d, "/employees/", employee)
}

func (s *EmployeesService) Update(ctx context.Context, id int, employee *Employee) (*Employee, error) {
	return update[Employee](ctx, s.d, idPath("employees", id), employee)
}

func (s *EmployeesService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("employees", id))
}

// FilterBySkill lists the employees holding a given skill.
func (s *EmployeesService) FilterBySkill(ctx context.Context, skillID int, opts *ListOptions) ([]Employee, error) {
	q := opts.query()
	if q == nil {
		q = url.Values{}
	}
	q.Set("skill_id", strconv.Itoa(skillID))

	var employees []Employee
	err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: "/employees/filter_by_skill/", Query: q}, &employees)
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// Skills lists the skills held by one employee.
func (s *EmployeesService) Skills(ctx context.Context, id int) ([]EmployeeSkill, error) {
	var skills []EmployeeSkill
	err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: idPath("employees", id) + "skills/"}, &skills)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// EvaluateForPosition asks the backend how well an employee fits a
// position. The payload shape is backend-defined and evolving, so it is
// returned undecoded.
func (s *EmployeesService) EvaluateForPosition(ctx context.Context, employeeID, positionID int) (map[string]any, error) {
	path := idPath("employees", employeeID) + "evaluate_for_position/" + strconv.Itoa(positionID) + "/"

	var result map[string]any
	if err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, err
	}
	return result, nil
}
