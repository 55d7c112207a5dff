package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/skillsmatch/go-skillsmatch/api"
	errs "github.com/skillsmatch/go-skillsmatch/internal/errors"
	"github.com/skillsmatch/go-skillsmatch/internal/utils"
	"github.com/skillsmatch/go-skillsmatch/session"
	"github.com/stretchr/testify/require"
)

// fakeDoer records dispatched requests and answers them from a scripted
// method+path table.
type fakeDoer struct {
	requests  []session.Request
	responses map[string]string
	err       error
}

func (f *fakeDoer) Do(_ context.Context, req session.Request, out any) error {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return f.err
	}
	if out == nil {
		return nil
	}
	if body, ok := f.responses[req.Method+" "+req.Path]; ok {
		return json.Unmarshal([]byte(body), out)
	}
	return nil
}

func (f *fakeDoer) last() session.Request {
	return f.requests[len(f.requests)-1]
}

func TestEmployeesList(t *testing.T) {
	d := &fakeDoer{responses: map[string]string{
		"GET /employees/": `{"count":2,"next":"http://x/employees/?page=2","results":[
			{"id":1,"first_name":"Alice","last_name":"Martin","email":"alice@example.com","employment_status":"ACTIVE"},
			{"id":2,"first_name":"Bob","last_name":"Durand","email":"bob@example.com","employment_status":"ON_LEAVE"}
		]}`,
	}}
	client := api.New(d)

	page, err := client.Employees.List(context.Background(), &api.ListOptions{Page: 1, Search: "a", Ordering: "last_name"})
	require.NoError(t, err)
	require.Equal(t, 2, page.Count)
	require.NotNil(t, page.Next)
	require.Len(t, page.Results, 2)
	require.Equal(t, api.EmploymentActive, page.Results[0].EmploymentStatus)

	req := d.last()
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/employees/", req.Path)
	require.Equal(t, "1", req.Query.Get("page"))
	require.Equal(t, "a", req.Query.Get("search"))
	require.Equal(t, "last_name", req.Query.Get("ordering"))
}

func TestEmployeesCreate(t *testing.T) {
	d := &fakeDoer{responses: map[string]string{
		"POST /employees/": `{"id":7,"first_name":"Carol","last_name":"Lefevre","email":"carol@example.com"}`,
	}}
	client := api.New(d)

	created, err := client.Employees.Create(context.Background(), &api.Employee{
		FirstName:   "Carol",
		LastName:    "Lefevre",
		Email:       "carol@example.com",
		PhoneNumber: utils.Ptr("+33 1 23 45 67 89"),
		HireDate:    "2024-03-01",
		DateOfBirth: "1991-07-14",
	})
	require.NoError(t, err)
	require.Equal(t, 7, created.ID)

	req := d.last()
	require.Equal(t, http.MethodPost, req.Method)
	body, ok := req.Body.(*api.Employee)
	require.True(t, ok)
	require.Equal(t, "+33 1 23 45 67 89", utils.Value(body.PhoneNumber))
}

func TestEmployeesFilterBySkill(t *testing.T) {
	d := &fakeDoer{responses: map[string]string{
		"GET /employees/filter_by_skill/": `[{"id":1,"first_name":"Alice"}]`,
	}}
	client := api.New(d)

	employees, err := client.Employees.FilterBySkill(context.Background(), 42, nil)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Equal(t, "42", d.last().Query.Get("skill_id"))
}

func TestEmployeeSkillsSubresource(t *testing.T) {
	d := &fakeDoer{responses: map[string]string{
		"GET /employees/3/skills/": `[{"id":9,"employee":3,"skill":42,"skill_name":"Go","proficiency_level":4}]`,
	}}
	client := api.New(d)

	skills, err := client.Employees.Skills(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.Equal(t, api.ProficiencyAdvanced, skills[0].ProficiencyLevel)
}

func TestPositionsAssignEmployee(t *testing.T) {
	d := &fakeDoer{responses: map[string]string{
		"POST /positions/5/assign_employee/": `{"id":5,"job":2,"status":"OCCUPIED","employee":3}`,
	}}
	client := api.New(d)

	position, err := client.Positions.AssignEmployee(context.Background(), 5, 3)
	require.NoError(t, err)
	require.Equal(t, api.PositionOccupied, position.Status)
	require.Equal(t, 3, utils.Value(position.Employee))

	req := d.last()
	require.Equal(t, "/positions/5/assign_employee/", req.Path)
	require.Equal(t, map[string]int{"employee_id": 3}, req.Body)
}

func TestEvaluationsByEmployee(t *testing.T) {
	d := &fakeDoer{responses: map[string]string{
		"GET /evaluations/by_employee/": `[{"id":1,"employee":3,"skill":42,"quantitative_level":4,"evaluation_date":"2025-06-01"}]`,
	}}
	client := api.New(d)

	evaluations, err := client.Evaluations.ByEmployee(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, evaluations, 1)
	require.Equal(t, "3", d.last().Query.Get("employee_id"))
}

func TestSkillsDelete(t *testing.T) {
	d := &fakeDoer{}
	client := api.New(d)

	require.NoError(t, client.Skills.Delete(context.Background(), 11))

	req := d.last()
	require.Equal(t, http.MethodDelete, req.Method)
	require.Equal(t, "/skills/11/", req.Path)
}

func TestSettingsUpdateCustomFieldsPatchesEveryRecord(t *testing.T) {
	d := &fakeDoer{responses: map[string]string{
		"GET /jobs/": `{"count":2,"results":[{"id":1},{"id":2}]}`,
	}}
	client := api.New(d)

	fields := api.CustomFields{"field1": {Label: "Cost centre", Visible: true}}
	require.NoError(t, client.Settings.UpdateCustomFields(context.Background(), api.ModelJob, fields))

	require.Len(t, d.requests, 3)
	require.Equal(t, http.MethodPatch, d.requests[1].Method)
	require.Equal(t, "/jobs/1/", d.requests[1].Path)
	require.Equal(t, "/jobs/2/", d.requests[2].Path)
}

func TestSettingsRejectsUnknownModelType(t *testing.T) {
	client := api.New(&fakeDoer{})

	_, err := client.Settings.CustomFieldsFor(context.Background(), "evaluation")
	require.Error(t, err)
	require.Error(t, client.Settings.UpdateCustomFields(context.Background(), "evaluation", nil))
}

func TestErrorsPropagateUnchanged(t *testing.T) {
	apiErr := &errs.APIError{StatusCode: http.StatusBadRequest, Detail: "hire_date: invalid date"}
	client := api.New(&fakeDoer{err: apiErr})

	_, err := client.Departments.List(context.Background(), nil)
	require.ErrorIs(t, err, apiErr)
}
