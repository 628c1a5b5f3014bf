package dto

// Data Transfer Objects for the email-confirmation flow

// SendCodeRequest: payload for requesting a confirmation code
type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendCodeResponse echoes the address the code was sent to
type SendCodeResponse struct {
	Email string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a session token
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the signed session credential
type TokenResponse struct {
	Token string `json:"token"`
}
