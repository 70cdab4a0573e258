package devserver

// userPayload is the profile shape shared by auth responses and
// /auth/me. The client expects these fields at the top level of the
// login and register responses.
type userPayload struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Verified      bool   `json:"verified"`
	MonthlyBudget int64  `json:"monthlyBudget"`
	SavingsTarget int64  `json:"savingsTarget"`
	ProfileImage  string `json:"profileImage,omitempty"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the JSON body for POST /auth/refresh-token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest is the JSON body for POST /auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TargetsRequest is the JSON body for PUT /auth/targets.
type TargetsRequest struct {
	MonthlyBudget *int64 `json:"monthlyBudget"`
	SavingsTarget *int64 `json:"savingsTarget"`
}

// ProfileRequest is the JSON body for PUT /auth/profile.
type ProfileRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	ProfileImage *string `json:"profileImage"`
}

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	userPayload
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// ErrorResponse is the JSON body of every error status.
type ErrorResponse struct {
	Error string `json:"error"`
}
