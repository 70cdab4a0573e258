package client

import "context"

// Login exchanges credentials for a token pair and the user's profile.
// A 401 surfaces as *AuthenticationError.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and immediately establishes a session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken exchanges a refresh token for a new access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.post(ctx, "/auth/refresh-token", refreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout asks the backend to invalidate the refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.post(ctx, "/auth/logout", logoutRequest{RefreshToken: refreshToken}, nil)
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateTargets updates the user's budget targets and returns the
// server's view of the profile.
func (c *Client) UpdateTargets(ctx context.Context, patch TargetsPatch) (*User, error) {
	var user User
	if err := c.put(ctx, "/auth/targets", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates profile fields and returns the server's view of
// the profile.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	var user User
	if err := c.put(ctx, "/auth/profile", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
