package client

// User is the profile record returned by the backend. Budget fields are
// in minor currency units.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Verified      bool   `json:"verified"`
	MonthlyBudget int64  `json:"monthlyBudget"`
	SavingsTarget int64  `json:"savingsTarget"`
	ProfileImage  string `json:"profileImage,omitempty"`
}

// AuthResponse is returned from the login and register endpoints. The
// user's profile fields sit at the top level of the response body. Older
// backend versions return the access token under "token"; AccessToken()
// accepts either key.
type AuthResponse struct {
	Access       string `json:"accessToken"`
	LegacyToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	User
}

// AccessToken returns the access token regardless of which key the
// backend used.
func (r *AuthResponse) AccessToken() string {
	if r.Access != "" {
		return r.Access
	}
	return r.LegacyToken
}

// RefreshResponse is returned from the refresh-token endpoint.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// ProfilePatch is the body for PUT /auth/profile. Nil fields are left
// unchanged by the backend.
type ProfilePatch struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// TargetsPatch is the body for PUT /auth/targets. Nil fields are left
// unchanged by the backend.
type TargetsPatch struct {
	MonthlyBudget *int64 `json:"monthlyBudget,omitempty"`
	SavingsTarget *int64 `json:"savingsTarget,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}
