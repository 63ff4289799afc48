package models

import "time"

type PasswordResetToken struct {
	Token_ID   string    `json:"tokenId"`
	User_ID    string    `json:"userId"`
	Code       string    `json:"code"`
	Expires_At time.Time `json:"expiresAt"`
	Used       bool      `json:"used"`
	Attempts   int       `json:"attempts"`
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the 6-digit code emailed by forgot-password in Token.
type ResetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Token    string `json:"token" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=6"`
}
