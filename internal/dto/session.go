package dto

// SignInRequest carries the storefront's form-encoded credentials.
type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// GoogleSignInRequest carries a Google ID token obtained by the storefront.
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" form:"id_token" binding:"required"`
}

// SignInResponse is returned on a successful sign-in.
type SignInResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SuccessResponse acknowledges an operation without a payload.
type SuccessResponse struct {
	Success string `json:"success"`
}
