// ABOUTME: Survey template endpoints and result aggregates
// ABOUTME: Create, read, update, delete, add questions, and fetch results

package academyx

import (
	"context"
	"errors"
	"net/http"
)

func (a *API) Surveys(ctx context.Context) ([]Survey, error) {
	var surveys []Survey
	if err := a.get(ctx, "admin/surveys/all", &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (a *API) Survey(ctx context.Context, id string) (*Survey, error) {
	seg, err := segment("survey", id)
	if err != nil {
		return nil, err
	}
	var s Survey
	if err := a.get(ctx, "admin/surveys/"+seg, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *API) CreateSurvey(ctx context.Context, in SurveyInput) (*Survey, error) {
	if in.Title == "" {
		return nil, errors.New("survey title is required")
	}
	var s Survey
	if err := a.call(ctx, http.MethodPost, "admin/surveys/create", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *API) UpdateSurvey(ctx context.Context, id string, in SurveyInput) (*Survey, error) {
	seg, err := segment("survey", id)
	if err != nil {
		return nil, err
	}
	var s Survey
	if err := a.call(ctx, http.MethodPatch, "admin/surveys/"+seg+"/update", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *API) DeleteSurvey(ctx context.Context, id string) error {
	seg, err := segment("survey", id)
	if err != nil {
		return err
	}
	return a.call(ctx, http.MethodDelete, "/surveys/"+seg+"/delete", nil, nil)
}

// AddQuestions appends questions to a survey template.
func (a *API) AddQuestions(ctx context.Context, in AddQuestionsInput) (Result, error) {
	if _, err := segment("survey", in.SurveyID); err != nil {
		return nil, err
	}
	if len(in.Questions) == 0 {
		return nil, errors.New("no questions to add")
	}
	var res Result
	if err := a.call(ctx, http.MethodPost, "/surveys/add-questions", in, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// SurveyResults returns the answer counts for a custom survey.
func (a *API) SurveyResults(ctx context.Context, customSurveyID string) (*SurveyResult, error) {
	seg, err := segment("custom survey", customSurveyID)
	if err != nil {
		return nil, err
	}
	var r SurveyResult
	if err := a.get(ctx, "admin/surveys/"+seg+"/results", &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// AllResults returns results across every survey. The shape varies by
// backend version, so it is left raw.
func (a *API) AllResults(ctx context.Context) (Result, error) {
	var res Result
	if err := a.get(ctx, "admin/surveys/results", &res); err != nil {
		return nil, err
	}
	return res, nil
}
