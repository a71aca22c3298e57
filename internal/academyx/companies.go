// ABOUTME: Admin company endpoints and company personnel management
// ABOUTME: Covers create, list, details, update, status, delete and personnel

package academyx

import (
	"context"
	"errors"
	"net/http"
)

func (a *API) CreateCompany(ctx context.Context, in CompanyInput) (*Company, error) {
	if in.Name == "" {
		return nil, errors.New("company name is required")
	}
	var c Company
	if err := a.call(ctx, http.MethodPost, "admin/companies/create", in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *API) Companies(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := a.get(ctx, "admin/companies/get-all", &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (a *API) Company(ctx context.Context, id string) (*Company, error) {
	seg, err := segment("company", id)
	if err != nil {
		return nil, err
	}
	var c Company
	if err := a.get(ctx, "admin/companies/"+seg+"/details", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *API) UpdateCompany(ctx context.Context, id string, in CompanyInput) (*Company, error) {
	seg, err := segment("company", id)
	if err != nil {
		return nil, err
	}
	var c Company
	if err := a.call(ctx, http.MethodPatch, "admin/companies/"+seg+"/update/", in, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetCompanyStatus activates or deactivates a company. The body is a bare
// JSON boolean.
func (a *API) SetCompanyStatus(ctx context.Context, id string, active bool) error {
	seg, err := segment("company", id)
	if err != nil {
		return err
	}
	return a.call(ctx, http.MethodPatch, "/companies/"+seg+"/update-status", active, nil)
}

func (a *API) DeleteCompany(ctx context.Context, id string) error {
	seg, err := segment("company", id)
	if err != nil {
		return err
	}
	return a.call(ctx, http.MethodDelete, "/companies/"+seg+"/delete", nil, nil)
}

// CompanySurveys lists the custom surveys assigned to a company.
func (a *API) CompanySurveys(ctx context.Context, id string) ([]CustomSurvey, error) {
	seg, err := segment("company", id)
	if err != nil {
		return nil, err
	}
	var surveys []CustomSurvey
	if err := a.get(ctx, "admin/companies/"+seg+"/surveys", &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (a *API) CompanyUsers(ctx context.Context, id string) ([]User, error) {
	seg, err := segment("company", id)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := a.get(ctx, "admin/companies/"+seg+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddCompanyUser adds personnel to a company. An empty CompanyRole becomes
// DefaultCompanyRole.
func (a *API) AddCompanyUser(ctx context.Context, companyID string, in PersonnelInput) (*User, error) {
	seg, err := segment("company", companyID)
	if err != nil {
		return nil, err
	}
	in, err = normalizePersonnel(in)
	if err != nil {
		return nil, err
	}
	var u User
	if err := a.call(ctx, http.MethodPost, "admin/companies/"+seg+"/add-personnel", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeletePersonnel removes a user from their company.
func (a *API) DeletePersonnel(ctx context.Context, personnelID string) error {
	seg, err := segment("personnel", personnelID)
	if err != nil {
		return err
	}
	return a.call(ctx, http.MethodDelete, "/companies/delete-personnel/"+seg, nil, nil)
}

func (a *API) UpdatePersonnel(ctx context.Context, personnelID string, in PersonnelInput) (*User, error) {
	seg, err := segment("personnel", personnelID)
	if err != nil {
		return nil, err
	}
	var u User
	if err := a.call(ctx, http.MethodPatch, "/companies/update-personnel/"+seg, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func normalizePersonnel(in PersonnelInput) (PersonnelInput, error) {
	if in.Email == "" {
		return in, errors.New("personnel email is required")
	}
	if in.CompanyRole == "" {
		in.CompanyRole = DefaultCompanyRole
	}
	return in, nil
}
