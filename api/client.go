// Package api exposes the SkillsMatch resource endpoints as typed
// services. Every call is dispatched through a session.Manager (or any
// Doer), which owns bearer-token attachment and the refresh-and-retry
// behaviour; this package only knows paths, parameters, and payload
// shapes.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/skillsmatch/go-skillsmatch/session"
)

// Doer is the authenticated transport the client dispatches through.
// *session.Manager satisfies it.
type Doer interface {
	Do(ctx context.Context, req session.Request, out any) error
}

// Client groups the per-resource services.
type Client struct {
	Employees      *EmployeesService
	Departments    *DepartmentsService
	Jobs           *JobsService
	Positions      *PositionsService
	Skills         *SkillsService
	PositionSkills *PositionSkillsService
	EmployeeSkills *EmployeeSkillsService
	Evaluations    *EvaluationsService
	Settings       *SettingsService
}

// New builds a Client dispatching through d.
func New(d Doer) *Client {
	return &Client{
		Employees:      &EmployeesService{d: d},
		Departments:    &DepartmentsService{d: d},
		Jobs:           &JobsService{d: d},
		Positions:      &PositionsService{d: d},
		Skills:         &SkillsService{d: d},
		PositionSkills: &PositionSkillsService{d: d},
		EmployeeSkills: &EmployeeSkillsService{d: d},
		Evaluations:    &EvaluationsService{d: d},
		Settings:       &SettingsService{d: d},
	}
}

// Page is the backend's paginated list envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ListOptions carries the common search/pagination/filtering query
// parameters accepted by list endpoints. Params holds resource-specific
// filters (e.g. category for skills).
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
	Params   url.Values
}

func (o *ListOptions) query() url.Values {
	if o == nil {
		return nil
	}
	q := url.Values{}
	for k, vs := range o.Params {
		q[k] = vs
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Ordering != "" {
		q.Set("ordering", o.Ordering)
	}
	return q
}

func list[T any](ctx context.Context, d Doer, path string, opts *ListOptions) (*Page[T], error) {
	var page Page[T]
	err := d.Do(ctx, session.Request{Method: http.MethodGet, Path: path, Query: opts.query()}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func get[T any](ctx context.Context, d Doer, path string, query url.Values) (*T, error) {
	var out T
	err := d.Do(ctx, session.Request{Method: http.MethodGet, Path: path, Query: query}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func create[T any](ctx context.Context, d Doer, path string, body any) (*T, error) {
	var out T
	err := d.Do(ctx, session.Request{Method: http.MethodPost, Path: path, Body: body}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func update[T any](ctx context.Context, d Doer, path string, body any) (*T, error) {
	var out T
	err := d.Do(ctx, session.Request{Method: http.MethodPut, Path: path, Body: body}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func del(ctx context.Context, d Doer, path string) error {
	return d.Do(ctx, session.Request{Method: http.MethodDelete, Path: path}, nil)
}

func idPath(resource string, id int) string {
	return "/" + resource + "/" + strconv.Itoa(id) + "/"
}
