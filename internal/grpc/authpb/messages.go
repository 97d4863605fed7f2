package authpb

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	UserUid string `json:"user_uid"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ExpiresAt в секундах Unix.
type LoginResponse struct {
	Token     string `json:"token"`
	UserUid   string `json:"user_uid"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type ValidateTokenResponse struct {
	Valid   bool   `json:"valid"`
	UserUid string `json:"user_uid"`
	Email   string `json:"email"`
}

// UpdateUserRequest пустые Email и Password не меняются.
type UpdateUserRequest struct {
	UserUid  string `json:"user_uid"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type UpdateUserResponse struct {
	UserUid string `json:"user_uid"`
	Email   string `json:"email"`
}

type SignOutRequest struct {
	Token string `json:"token"`
}

type SignOutResponse struct{}

type AdminCreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminCreateUserResponse struct {
	UserUid string `json:"user_uid"`
}

type AdminDeleteUserRequest struct {
	UserUid string `json:"user_uid"`
}

type AdminDeleteUserResponse struct{}
