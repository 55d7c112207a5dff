package api

import (
	"context"
	"net/http"

	"github.com/skillsmatch/go-skillsmatch/session"
)

// JobFamily groups jobs sharing a domain of expertise.
type JobFamily struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Job is the template profile a concrete Position derives from.
type Job struct {
	ID             int          `json:"id,omitempty"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Level          string       `json:"level,omitempty"`
	JobFamily      int          `json:"job_family,omitempty"`
	RequiredSkills []int        `json:"required_skills,omitempty"`
	CustomFields   CustomFields `json:"custom_fields,omitempty"`
}

// JobsService covers the /jobs/ and /job-families/ endpoints.
type JobsService struct {
	d Doer
}

func (s *JobsService) List(ctx context.Context, opts *ListOptions) (*Page[Job], error) {
	return list[Job](ctx, s.d, "/jobs/", opts)
}

func (s *JobsService) Get(ctx context.Context, id int) (*Job, error) {
	return get[Job](ctx, s.d, idPath("jobs", id), nil)
}

func (s *JobsService) Create(ctx context.Context, job *Job) (*Job, error) {
	return create[Job](ctx, s.d, "/jobs/", job)
}

func (s *JobsService) Update(ctx context.Context, id int, job *Job) (*Job, error) {
	return update[Job](ctx, s.d, idPath("jobs", id), job)
}

func (s *JobsService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("jobs", id))
}

// Positions lists the concrete positions instantiated from a job.
func (s *JobsService) Positions(ctx context.Context, id int) ([]Position, error) {
	var positions []Position
	err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: idPath("jobs", id) + "positions/"}, &positions)
	if err != nil {
		return nil, err
	}
	return positions, nil
}

// RequiredSkills lists the skills a job calls for.
func (s *JobsService) RequiredSkills(ctx context.Context, id int) ([]Skill, error) {
	var skills []Skill
	err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: idPath("jobs", id) + "required_skills/"}, &skills)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// Families lists the job families.
func (s *JobsService) Families(ctx context.Context, opts *ListOptions) (*Page[JobFamily], error) {
	return list[JobFamily](ctx, s.d, "/job-families/", opts)
}
