package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/skillsmatch/go-skillsmatch/session"
)

// Evaluation records an assessed skill level for an employee: a
// quantitative level (1-5) plus a free-form qualitative description.
type Evaluation struct {
	ID                     int    `json:"id,omitempty"`
	Employee               int    `json:"employee"`
	Skill                  int    `json:"skill"`
	EmployeeName           string `json:"employee_name,omitempty"`
	SkillName              string `json:"skill_name,omitempty"`
	QuantitativeLevel      int    `json:"quantitative_level"`
	QualitativeDescription string `json:"qualitative_description,omitempty"`
	EvaluationDate         string `json:"evaluation_date,omitempty"`
}

// EvaluationsService covers the /evaluations/ endpoints.
type EvaluationsService struct {
	d Doer
}

func (s *EvaluationsService) List(ctx context.Context, opts *ListOptions) (*Page[Evaluation], error) {
	return list[Evaluation](ctx, s.d, "/evaluations/", opts)
}

func (s *EvaluationsService) Get(ctx context.Context, id int) (*Evaluation, error) {
	return get[Evaluation](ctx, s.d, idPath("evaluations", id), nil)
}

func (s *EvaluationsService) Create(ctx context.Context, evaluation *Evaluation) (*Evaluation, error) {
	return create[Evaluation](ctx, s.d, "/evaluations/", evaluation)
}

func (s *EvaluationsService) Update(ctx context.Context, id int, evaluation *Evaluation) (*Evaluation, error) {
	return update[Evaluation](ctx, s.d, idPath("evaluations", id), evaluation)
}

func (s *EvaluationsService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("evaluations", id))
}

// ByEmployee lists the evaluations recorded for one employee.
func (s *EvaluationsService) ByEmployee(ctx context.Context, employeeID int) ([]Evaluation, error) {
	return s.custom(ctx, "/evaluations/by_employee/", "employee_id", employeeID)
}

// BySkill lists the evaluations recorded against one skill.
func (s *EvaluationsService) BySkill(ctx context.Context, skillID int) ([]Evaluation, error) {
	return s.custom(ctx, "/evaluations/by_skill/", "skill_id", skillID)
}

func (s *EvaluationsService) custom(ctx context.Context, path, param string, id int) ([]Evaluation, error) {
	q := url.Values{}
	q.Set(param, strconv.Itoa(id))

	var evaluations []Evaluation
	err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: path, Query: q}, &evaluations)
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}
