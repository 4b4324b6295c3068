package dto

// LoginRequest is the credential payload for token issuance
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jiri.pap@gmail.com"`
	Password string `json:"password" binding:"required" example:"2aoRs2VHXuvPHQ"`
}

// RegisterRequest creates a new user account
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3" example:"new.user@mail.muni.cz"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cr3tpassw0rd"`
	IsTeacher bool   `json:"isTeacher" example:"false"`
}

// TokenResponse carries the issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int    `json:"expires_in" example:"1800"`
}
