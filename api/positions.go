package api

import (
	"context"
	"net/http"

	"github.com/skillsmatch/go-skillsmatch/session"
)

// PositionStatus tracks whether a position is filled.
type PositionStatus string

const (
	PositionVacant       PositionStatus = "VACANT"
	PositionOccupied     PositionStatus = "OCCUPIED"
	PositionInTransition PositionStatus = "IN_TRANSITION"
)

// Position is a concrete instance of a Job within the organisation.
type Position struct {
	ID           int            `json:"id,omitempty"`
	Job          int            `json:"job"`
	Location     string         `json:"location,omitempty"`
	Status       PositionStatus `json:"status,omitempty"`
	StartDate    string         `json:"start_date,omitempty"`
	Employee     *int           `json:"employee,omitempty"`
	CustomFields CustomFields   `json:"custom_fields,omitempty"`
}

// PositionsService covers the /positions/ endpoints.
type PositionsService struct {
	d Doer
}

func (s *PositionsService) List(ctx context.Context, opts *ListOptions) (*Page[Position], error) {
	return list[Position](ctx, s.d, "/positions/", opts)
}

func (s *PositionsService) Get(ctx context.Context, id int) (*Position, error) {
	return get[Position](ctx, s.d, idPath("positions", id), nil)
}

func (s *PositionsService) Create(ctx context.Context, position *Position) (*Position, error) {
	return create[Position](ctx, s.d, "/positions/", position)
}

func (s *PositionsService) Update(ctx context.Context, id int, position *Position) (*Position, error) {
	return update[Position](ctx, s.d, idPath("positions", id), position)
}

func (s *PositionsService) Delete(ctx context.Context, id int) error {
	return del(ctx, s.d, idPath("positions", id))
}

// RequiredSkills lists the skill requirements specific to one position.
func (s *PositionsService) RequiredSkills(ctx context.Context, id int) ([]PositionSkill, error) {
	var skills []PositionSkill
	err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: idPath("positions", id) + "required_skills/"}, &skills)
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// AssignEmployee places an employee into a position and returns the
// updated position.
func (s *PositionsService) AssignEmployee(ctx context.Context, positionID, employeeID int) (*Position, error) {
	body := map[string]int{"employee_id": employeeID}

	var position Position
	err := s.d.Do(ctx, session.Request{
		Method: http.MethodPost,
		Path:   idPath("positions", positionID) + "assign_employee/",
		Body:   body,
	}, &position)
	if err != nil {
		return nil, err
	}
	return &position, nil
}
