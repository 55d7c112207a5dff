package api

import "context"

// Proficiency levels for an EmployeeSkill.
const (
	ProficiencyBeginner          = 1
	ProficiencyEarlyIntermediate = 2
	ProficiencyIntermediate      = 3
	ProficiencyAdvanced          = 4
	ProficiencyExpert            = 5
)

// EmployeeSkill links an employee to a skill they hold, with a
// proficiency level from 1 (beginner) to 5 (expert). An employee holds
// each skill at most once.
type EmployeeSkill struct {
	ID               int    `json:"id,omitempty"`
	Employee         int    `json:"employee"`
	Skill            int    `json:"skill"`
	SkillName        string `json:"skill_name,omitempty"`
	ProficiencyLevel int    `json:"proficiency_level"`
	DateAcquired     string `json:"date_acquired,omitempty"`
	LastUpdated      string `json:"last_updated,omitempty"`
}

// EmployeeSkillsService covers the /employee-skills/ endpoints.
type EmployeeSkillsService struct {
	d Doer
}

func (s *EmployeeSkillsService) List(ctx context.Context, opts *ListOptions) (*Page[EmployeeSkill], error) {
	return list[EmployeeSkill](ctx, s.d, "/employee-skills/", opts)
}

func (s *EmployeeSkillsService) Get(ctx context.Context, id int) (*EmployeeSkill, error) {
	return get[EmployeeSkill](ctx, s.d, idPath("employee-skills", id), nil)
}

func (s *EmployeeSkillsService) Create(ctx context.Context, es *EmployeeSkill) (*EmployeeSkill, error) {
	return create[EmployeeSkill](ctx, s.d, "/employee-skills/", es)
}

func (s *EmployeeSkillsService) Update(ctx context.Context, id int, es *EmployeeSkill) (*EmployeeSkill, error) {
	return update[EmployeeSkill](ctx, s.d, idPath("employee-skills", id), es)
}

func (s *EmployeeSkillsService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("employee-skills", id))
}
