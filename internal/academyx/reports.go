// ABOUTME: Generated survey report endpoint
// ABOUTME: Report content is markdown rendered by the report package

package academyx

import "context"

// Report returns the generated analysis for a custom survey.
func (a *API) Report(ctx context.Context, customSurveyID string) (*Report, error) {
	seg, err := segment("custom survey", customSurveyID)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := a.get(ctx, "/admin/reports/"+seg, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
