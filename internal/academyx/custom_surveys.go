// ABOUTME: Custom survey endpoints: company-specific survey assignments
// ABOUTME: Generated from a template with a title, company and due date

package academyx

import (
	"context"
	"errors"
	"net/http"
)

// CustomSurveys lists every assigned survey across companies.
func (a *API) CustomSurveys(ctx context.Context) ([]CustomSurvey, error) {
	var surveys []CustomSurvey
	if err := a.get(ctx, "admin/surveys/custom/all", &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// CustomSurvey fetches one assigned survey with its questions.
func (a *API) CustomSurvey(ctx context.Context, id string) (*CustomSurvey, error) {
	seg, err := segment("custom survey", id)
	if err != nil {
		return nil, err
	}
	var s CustomSurvey
	if err := a.get(ctx, "admin/surveys/custom/"+seg, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AssignSurvey generates a custom survey for a company from a template.
func (a *API) AssignSurvey(ctx context.Context, in AssignmentInput) (*CustomSurvey, error) {
	if in.SurveyID == "" || in.CompanyID == "" {
		return nil, errors.New("survey and company are required")
	}
	var s CustomSurvey
	if err := a.call(ctx, http.MethodPost, "admin/surveys/custom/generate", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateCustomSurvey replaces the title, company and due date of an assigned
// survey. Fields other than SurveyID are sent even when empty, so callers
// start from the current values.
func (a *API) UpdateCustomSurvey(ctx context.Context, id string, in AssignmentInput) (*CustomSurvey, error) {
	seg, err := segment("custom survey", id)
	if err != nil {
		return nil, err
	}
	var s CustomSurvey
	if err := a.call(ctx, http.MethodPatch, "admin/surveys/custom/"+seg+"/update", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteCustomSurvey removes an assigned survey and its responses.
func (a *API) DeleteCustomSurvey(ctx context.Context, id string) error {
	seg, err := segment("custom survey", id)
	if err != nil {
		return err
	}
	return a.call(ctx, http.MethodDelete, "admin/surveys/custom/"+seg+"/delete", nil, nil)
}
