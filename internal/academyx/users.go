// ABOUTME: User endpoints: the signed-in profile and the admin user list
// ABOUTME: Both require an authenticated session

package academyx

import "context"

// Me returns the signed-in user.
func (a *API) Me(ctx context.Context) (*User, error) {
	var u User
	if err := a.get(ctx, "/users/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Users lists every user on the platform.
func (a *API) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := a.get(ctx, "admin/users/get-all", &users); err != nil {
		return nil, err
	}
	return users, nil
}
