package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	errs "github.com/skillsmatch/go-skillsmatch/internal/errors"
)

// Request describes one authenticated call to the backend. Body is
// JSON-encoded when non-nil.
type Request struct {
	Method string
	Path   string // resource path, e.g. "/employees/"
	Query  url.Values
	Body   any
}

type apiResponse struct {
	status int
	body   []byte
}

// Do dispatches an authenticated request, attaching the current access
// token as a bearer credential. A 401 response triggers one token
// refresh and one resend with the new token; a second 401 propagates as
// an AuthError without another refresh attempt. Non-auth failures are
// surfaced unchanged: transport failures as NetworkError, other non-2xx
// statuses as APIError. A 2xx response body is decoded into out when out
// is non-nil.
func (m *Manager) Do(ctx context.Context, req Request, out any) error {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "[Do] rate limiter")
		}
	}

	cred, err := m.repo.Get()
	if err != nil {
		return &errs.AuthError{Detail: "not authenticated", Err: errs.ErrNoCredential}
	}

	resp, err := m.send(ctx, req.Method, req.Path, req.Query, req.Body, cred.AccessToken)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized {
		newAccess, err := m.Refresh(ctx)
		if err != nil {
			// Refresh exhausted; the session is already reset.
			return err
		}

		// A logout that raced the refresh wins: only retry with a
		// credential that is still persisted.
		cred, err := m.repo.Get()
		if err != nil || cred.AccessToken != newAccess {
			return &errs.AuthError{Detail: "session expired", Err: errs.ErrSessionExpired}
		}

		m.logger.Debug().Str("method", req.Method).Str("path", req.Path).Msg("retrying request after token refresh")
		resp, err = m.send(ctx, req.Method, req.Path, req.Query, req.Body, newAccess)
		if err != nil {
			return err
		}
		if resp.status == http.StatusUnauthorized {
			// The refreshed token was rejected too. No second refresh.
			m.Logout()
			return &errs.AuthError{Detail: errorDetail(resp.body, "authorization rejected")}
		}
	}

	return decodeResponse(resp, out)
}

// Get dispatches an authenticated GET request.
func (m *Manager) Get(ctx context.Context, path string, query url.Values, out any) error {
	return m.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post dispatches an authenticated POST request.
func (m *Manager) Post(ctx context.Context, path string, body, out any) error {
	return m.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put dispatches an authenticated PUT request.
func (m *Manager) Put(ctx context.Context, path string, body, out any) error {
	return m.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch dispatches an authenticated PATCH request.
func (m *Manager) Patch(ctx context.Context, path string, body, out any) error {
	return m.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete dispatches an authenticated DELETE request.
func (m *Manager) Delete(ctx context.Context, path string) error {
	return m.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

// send performs a single HTTP round trip. A transport failure (no
// response received) is reported as a NetworkError; any received
// response, whatever its status, is returned for the caller to judge.
func (m *Manager) send(ctx context.Context, method, path string, query url.Values, body any, bearer string) (*apiResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[send] marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	u := m.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "[send] build %s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.NetworkError{Err: err}
	}

	return &apiResponse{status: resp.StatusCode, body: payload}, nil
}

func decodeResponse(resp *apiResponse, out any) error {
	if resp.status < http.StatusOK || resp.status >= http.StatusMultipleChoices {
		return &errs.APIError{
			StatusCode: resp.status,
			Detail:     errorDetail(resp.body, http.StatusText(resp.status)),
		}
	}
	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return errors.Wrap(err, "[Do] decode response body")
	}
	return nil
}

// errorDetail extracts the backend's human-readable message from an
// error body, falling back when none is present.
func errorDetail(body []byte, fallback string) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return fallback
}
