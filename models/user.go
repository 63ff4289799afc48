package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	User_ID            string     `json:"userId"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Password           string     `json:"-"`
	Role               string     `json:"role"`
	Is_Verified        bool       `json:"isVerified"`
	Verification_Token string     `json:"-"`
	Verified_At        *time.Time `json:"verifiedAt"`
	Created_At         time.Time  `json:"createdAt" goqu:"skipinsert,skipupdate"`
	Updated_At         time.Time  `json:"updatedAt" goqu:"skipinsert,skipupdate"`
}

// TokenUser is the identity handed to the frontend and carried on every request.
type TokenUser struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (u User) TokenUser() TokenUser {
	return TokenUser{UserID: u.User_ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Register struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	VerificationToken string `json:"verificationToken" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
}
