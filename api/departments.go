package api

import (
	"context"
	"net/http"

	"github.com/skillsmatch/go-skillsmatch/session"
)

// Department is an organisational unit.
type Department struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ManagerName string `json:"manager_name,omitempty"`
}

// DepartmentsService covers the /departments/ endpoints.
type DepartmentsService struct {
	d Doer
}

func (s *DepartmentsService) List(ctx context.Context, opts *ListOptions) (*Page[Department], error) {
	return list[Department](ctx, s.d, "/departments/", opts)
}

func (s *DepartmentsService) Get(ctx context.Context, id int) (*Department, error) {
	return get[Department](ctx, s.d, idPath("departments", id), nil)
}

func (s *DepartmentsService) Create(ctx context.Context, department *Department) (*Department, error) {
	return create[Department](ctx, s.d, "/departments/", department)
}

func (s *DepartmentsService) Update(ctx context.Context, id int, department *Department) (*Department, error) {
	return update[Department](ctx, s.d, idPath("departments", id), department)
}

func (s *DepartmentsService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("departments", id))
}

// Employees lists the employees attached to a department.
func (s *DepartmentsService) Employees(ctx context.Context, id int) ([]Employee, error) {
	var employees []Employee
	err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: idPath("departments", id) + "employees/"}, &employees)
	if err != nil {
		return nil, err
	}
	return employees, nil
}
