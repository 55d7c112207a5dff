package api

import "context"

// Skill is an entry in the central skill catalogue.
type Skill struct {
	ID           int          `json:"id,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category,omitempty"`
	CustomFields CustomFields `json:"custom_fields,omitempty"`
}

// SkillsService covers the /skills/ endpoints.
type SkillsService struct {
	d Doer
}

func (s *SkillsService) List(ctx context.Context, opts *ListOptions) (*Page[Skill], error) {
	return list[Skill](ctx, s.d, "/skills/", opts)
}

// ListByCategory lists the skills within one category.
func (s *SkillsService) ListByCategory(ctx context.Context, category string) (*Page[Skill], error) {
	opts := &ListOptions{Params: map[string][]string{"category": {category}}}
	return list[Skill](ctx, s.d, "/skills/", opts)
}

func (s *SkillsService) Get(ctx context.Context, id int) (*Skill, error) {
	return get[Skill](ctx, s.d, idPath("skills", id), nil)
}

func (s *SkillsService) Create(ctx context.Context, skill *Skill) (*Skill, error) {
	return create[Skill](ctx, s.d, "/skills/", skill)
}

func (s *SkillsService) Update(ctx context.Context, id int, skill *Skill) (*Skill, error) {
	return update[Skill](ctx, s.d, idPath("skills", id), skill)
}

func (s *SkillsService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("skills", id))
}
