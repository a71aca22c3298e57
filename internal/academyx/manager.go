// ABOUTME: Company admin endpoints scoped to one company
// ABOUTME: An empty company id falls back to the session's active company

package academyx

import (
	"context"
	"net/http"
)

// MySurveys lists the custom surveys of the given or active company.
func (a *API) MySurveys(ctx context.Context, companyID string) ([]CustomSurvey, error) {
	seg, err := a.companyOrActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var surveys []CustomSurvey
	if err := a.get(ctx, "/companies/"+seg+"/surveys", &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (a *API) MySurveyResults(ctx context.Context, customSurveyID string) (*SurveyResult, error) {
	seg, err := segment("custom survey", customSurveyID)
	if err != nil {
		return nil, err
	}
	var r SurveyResult
	if err := a.get(ctx, "/surveys/"+seg+"/results", &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (a *API) MyCompany(ctx context.Context, companyID string) (*Company, error) {
	seg, err := a.companyOrActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var c Company
	if err := a.get(ctx, "/companies/"+seg+"/details", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *API) UpdateMyCompany(ctx context.Context, companyID string, in CompanyInput) (*Company, error) {
	seg, err := a.companyOrActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var c Company
	if err := a.call(ctx, http.MethodPatch, "/companies/"+seg+"/update/", in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *API) MyPersonnel(ctx context.Context, companyID string) ([]User, error) {
	seg, err := a.companyOrActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := a.get(ctx, "/companies/"+seg+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddMyPersonnel adds a user to the active company.
func (a *API) AddMyPersonnel(ctx context.Context, in PersonnelInput) (*User, error) {
	seg, err := a.companyOrActive(ctx, "")
	if err != nil {
		return nil, err
	}
	in, err = normalizePersonnel(in)
	if err != nil {
		return nil, err
	}
	var u User
	if err := a.call(ctx, http.MethodPost, "/companies/"+seg+"/add-personnel", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AssignedSurvey fetches a custom survey as its respondents see it. Company
// admins use the same endpoint for manager surveys.
func (a *API) AssignedSurvey(ctx context.Context, id string) (*CustomSurvey, error) {
	seg, err := segment("custom survey", id)
	if err != nil {
		return nil, err
	}
	var s CustomSurvey
	if err := a.call(ctx, http.MethodPost, "/surveys/custom/"+seg, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
