package api

import "context"

// Importance levels for a PositionSkill.
const (
	ImportanceLow       = 1
	ImportanceModerate  = 2
	ImportanceImportant = 3
	ImportanceVeryHigh  = 4
	ImportanceCritical  = 5
)

// PositionSkill is a skill requirement attached to a specific position,
// as opposed to the generic requirements of its Job. Importance runs
// from 1 (low) to 5 (critical).
type PositionSkill struct {
	ID              int     `json:"id,omitempty"`
	Position        int     `json:"position"`
	Skill           int     `json:"skill"`
	SkillName       string  `json:"skill_name,omitempty"`
	ImportanceLevel int     `json:"importance_level"`
	IsRequired      bool    `json:"is_required"`
	Description     *string `json:"description,omitempty"`
}

// PositionSkillsService covers the /position-skills/ endpoints.
type PositionSkillsService struct {
	d Doer
}

func (s *PositionSkillsService) List(ctx context.Context, opts *ListOptions) (*Page[PositionSkill], error) {
	return list[PositionSkill](ctx, s.d, "/position-skills/", opts)
}

func (s *PositionSkillsService) Get(ctx context.Context, id int) (*PositionSkill, error) {
	return get[PositionSkill](ctx, s.d, idPath("position-skills", id), nil)
}

func (s *PositionSkillsService) Create(ctx context.Context, ps *PositionSkill) (*PositionSkill, error) {
	return create[PositionSkill](ctx, s.d, "/position-skills/", ps)
}

func (s *PositionSkillsService) Update(ctx context.Context, id int, ps *PositionSkill) (*PositionSkill, error) {
	return update[PositionSkill](ctx, s.d, idPath("position-skills", id), ps)
}

func (s *PositionSkillsService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("position-skills", id))
}
