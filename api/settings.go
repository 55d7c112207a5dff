package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/skillsmatch/go-skillsmatch/session"
)

// CustomField is one configurable extra column on a model type.
type CustomField struct {
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// CustomFields maps field slots (field1..field4) to their definitions.
type CustomFields map[string]CustomField

// DefaultCustomFields returns the four hidden field slots every model
// type starts with.
func DefaultCustomFields() CustomFields {
	fields := make(CustomFields, 4)
	for i := 1; i <= 4; i++ {
		slot := fmt.Sprintf("field%d", i)
		fields[slot] = CustomField{Label: fmt.Sprintf("Custom field %d", i)}
	}
	return fields
}

// Model types that carry custom fields.
const (
	ModelJob      = "job"
	ModelSkill    = "skill"
	ModelPosition = "position"
	ModelEmployee = "employee"
)

// SettingsService manages the custom-field definitions. The backend
// stores them denormalised on every record of a model type, so reads
// sample the first record and writes patch every record.
type SettingsService struct {
	d Doer
}

func validModelType(modelType string) bool {
	switch modelType {
	case ModelJob, ModelSkill, ModelPosition, ModelEmployee:
		return true
	}
	return false
}

type customFieldsRecord struct {
	ID           int          `json:"id"`
	CustomFields CustomFields `json:"custom_fields"`
}

// CustomFieldsFor reads the custom-field definitions for a model type.
func (s *SettingsService) CustomFieldsFor(ctx context.Context, modelType string) (CustomFields, error) {
	if !validModelType(modelType) {
		return nil, errors.Errorf("[CustomFieldsFor] unknown model type %q", modelType)
	}

	var page Page[customFieldsRecord]
	if err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: "/" + modelType + "s/"}, &page); err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, errors.Errorf("[CustomFieldsFor] no %s records exist", modelType)
	}

	var record customFieldsRecord
	detailPath := "/" + modelType + "s/" + strconv.Itoa(page.Results[0].ID) + "/"
	if err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: detailPath}, &record); err != nil {
		return nil, err
	}
	if record.CustomFields == nil {
		return DefaultCustomFields(), nil
	}
	return record.CustomFields, nil
}

// UpdateCustomFields writes the custom-field definitions onto every
// record of a model type. It stops at the first failing record.
func (s *SettingsService) UpdateCustomFields(ctx context.Context, modelType string, fields CustomFields) error {
	if !validModelType(modelType) {
		return errors.Errorf("[UpdateCustomFields] unknown model type %q", modelType)
	}

	var page Page[customFieldsRecord]
	if err := s.d.Do(ctx, session.Request{Method: http.MethodGet, Path: "/" + modelType + "s/"}, &page); err != nil {
		return err
	}
	if len(page.Results) == 0 {
		return errors.Errorf("[UpdateCustomFields] no %s records to update", modelType)
	}

	body := map[string]CustomFields{"custom_fields": fields}
	for _, record := range page.Results {
		path := "/" + modelType + "s/" + strconv.Itoa(record.ID) + "/"
		if err := s.d.Do(ctx, session.Request{Method: http.MethodPatch, Path: path, Body: body}, nil); err != nil {
			return errors.Wrapf(err, "[UpdateCustomFields] patch %s %d", modelType, record.ID)
		}
	}

	return nil
}
