package api

import "time"

type User struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Session is an authenticated session. Tokens are only set by SignIn and
// RefreshToken.
type Session struct {
	SessionID    string    `json:"session_id"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	AccountType string    `json:"account_type"`
	CityID      *string   `json:"city_id,omitempty"`
	AvatarKey   *string   `json:"avatar_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type SignUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type SignUpResponse struct {
	User User `json:"user"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Session Session `json:"session"`
}

type SignOutRequest struct{}

type SignOutResponse struct{}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	Session Session `json:"session"`
}

type GetSessionRequest struct{}

type GetSessionResponse struct {
	Session Session `json:"session"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type CreateProfileRequest struct {
	Profile Profile `json:"profile"`
}

type UpdateOwnProfileRequest struct {
	DisplayName string  `json:"display_name"`
	Phone       *string `json:"phone,omitempty"`
	CityID      *string `json:"city_id,omitempty"`
}

type SetAccountTypeRequest struct {
	UserID      string `json:"user_id"`
	AccountType string `json:"account_type"`
}

type CreateUserRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName string  `json:"display_name"`
	Phone       *string `json:"phone,omitempty"`
	AccountType string  `json:"account_type"`
	CityID      *string `json:"city_id,omitempty"`
}

// ProfileResponse answers every call returning a single profile.
type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

type DeleteUserRequest struct {
	UserID string `json:"user_id"`
}

type DeleteUserResponse struct{}

type ListProfilesRequest struct {
	AccountType string `json:"account_type,omitempty"`
	CityID      string `json:"city_id,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

type ListProfilesResponse struct {
	Profiles []Profile `json:"profiles"`
}

type PresignAvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

type PresignAvatarUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
