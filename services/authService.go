package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	userTable         = "app_user"
	resetTokenTable   = "password_reset_token"
	resetCodeLifetime = 15 * time.Minute
	maxResetAttempts  = 3
	bcryptCost        = bcrypt.DefaultCost

	// TokenCookie carries the login token for browser clients.
	TokenCookie = "token"
)

// Session is an issued login: the signed token and the server-side record it names.
type Session struct {
	ID        string
	Token     string
	User      models.User
	ExpiresAt time.Time
}

// Claims is the verified content of a login token.
type Claims struct {
	UserID    string
	Role      string
	SessionID string
}

// Register creates an account. The very first account becomes the admin.
func Register(ctx context.Context, body models.Register) (models.User, error) {
	email := normalizeEmail(body.Email)

	taken, err := initializers.DB.From(userTable).
		Where(goqu.C("email").Eq(email)).
		CountContext(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("check user email: %w", err)
	}
	if taken > 0 {
		return models.User{}, Validationf("Email %s is already registered", email)
	}

	existing, err := initializers.DB.From(userTable).CountContext(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("count users: %w", err)
	}
	role := models.RoleUser
	if existing == 0 {
		role = models.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		User_ID:            uuid.NewString(),
		Name:               body.Name,
		Email:              email,
		Password:           string(hash),
		Role:               role,
		Verification_Token: uuid.NewString(),
	}

	_, err = initializers.DB.Insert(userTable).Rows(user).Executor().ExecContext(ctx)
	if err != nil {
		if _, dup := uniqueViolationOn(err); dup {
			return models.User{}, Validationf("Email %s is already registered", email)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	if mail := GetEmailService(); mail != nil {
		if err := mail.SendVerificationEmail(user.Email, user.Name, user.Verification_Token); err != nil {
			initializers.Log.Warnw("verification email not delivered", "user", user.User_ID, "error", err)
		}
	}

	initializers.Log.Infow("user registered", "user", user.User_ID, "role", user.Role)
	t := now()
	user.Created_At, user.Updated_At = t, t
	return user, nil
}

func VerifyEmail(ctx context.Context, body models.VerifyEmailRequest) (models.User, error) {
	var user models.User
	found, err := initializers.DB.From(userTable).
		Where(
			goqu.C("email").Eq(normalizeEmail(body.Email)),
			goqu.C("verification_token").Eq(body.VerificationToken),
		).
		ScanStructContext(ctx, &user)
	if err != nil {
		return user, fmt.Errorf("find user to verify: %w", err)
	}
	if !found || body.VerificationToken == "" {
		return models.User{}, Authf("Invalid verification token")
	}

	verifiedAt := now().UTC()
	_, err = initializers.DB.Update(userTable).
		Set(goqu.Record{
			"is_verified":        true,
			"verified_at":        verifiedAt,
			"verification_token": "",
			"updated_at":         goqu.L("NOW()"),
		}).
		Where(goqu.C("user_id").Eq(user.User_ID)).
		Executor().ExecContext(ctx)
	if err != nil {
		return user, fmt.Errorf("verify user %s: %w", user.User_ID, err)
	}

	user.Is_Verified = true
	user.Verified_At = &verifiedAt
	user.Verification_Token = ""
	return user, nil
}

// Login checks credentials and opens a server-side session.
func Login(ctx context.Context, body models.Login) (Session, error) {
	user, found, err := findUser(ctx, goqu.C("email").Eq(normalizeEmail(body.Email)))
	if err != nil {
		return Session{}, err
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		return Session{}, Authf("Invalid credentials")
	}
	if initializers.Config.RequireEmailVerification && !user.Is_Verified {
		return Session{}, Authf("Please verify your email before logging in")
	}

	ttl := initializers.Config.SessionTTL
	sess := Session{
		ID:        uuid.NewString(),
		User:      user,
		ExpiresAt: now().Add(ttl),
	}
	if err := initializers.Sessions.Create(ctx, sess.ID, user.User_ID, ttl); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	sess.Token, err = IssueToken(user, sess.ID, sess.ExpiresAt)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

func Logout(ctx context.Context, sessionID string) error {
	if err := initializers.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func IssueToken(user models.User, sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.User_ID,
		"role": user.Role,
		"sid":  sessionID,
		"exp":  expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(initializers.Config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry of a login token.
func ParseToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(initializers.Config.Secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, Authf("Invalid or expired token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, Authf("Invalid token")
	}
	if _, hasExp := mc["exp"]; !hasExp {
		return Claims{}, Authf("Invalid token")
	}

	claims := Claims{}
	claims.UserID, _ = mc["id"].(string)
	claims.Role, _ = mc["role"].(string)
	claims.SessionID, _ = mc["sid"].(string)
	if claims.UserID == "" || claims.SessionID == "" {
		return Claims{}, Authf("Invalid token")
	}
	return claims, nil
}

// Authenticate resolves a login token to its live session and user.
func Authenticate(ctx context.Context, tokenString string) (models.User, Claims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return models.User{}, claims, err
	}

	userID, ok, err := initializers.Sessions.Lookup(ctx, claims.SessionID)
	if err != nil {
		return models.User{}, claims, fmt.Errorf("lookup session: %w", err)
	}
	if !ok || userID != claims.UserID {
		return models.User{}, claims, Authf("Session expired, please log in again")
	}

	user, found, err := findUser(ctx, goqu.C("user_id").Eq(claims.UserID))
	if err != nil {
		return models.User{}, claims, err
	}
	if !found {
		return models.User{}, claims, Authf("User no longer exists")
	}
	return user, claims, nil
}

// RequireAdmin is the role gate for the admin API.
func RequireAdmin(user models.User) error {
	if !user.IsAdmin() {
		return Forbiddenf("Admin access required")
	}
	return nil
}

// ForgotPassword stores and mails a reset code. Unknown emails are not reported.
func ForgotPassword(ctx context.Context, email string) error {
	user, found, err := findUser(ctx, goqu.C("email").Eq(normalizeEmail(email)))
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	code, err := generate6DigitCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	resetToken := models.PasswordResetToken{
		Token_ID:   uuid.NewString(),
		User_ID:    user.User_ID,
		Code:       code,
		Expires_At: now().Add(resetCodeLifetime),
	}
	_, err = initializers.DB.Insert(resetTokenTable).Rows(resetToken).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	mail := GetEmailService()
	if mail == nil {
		initializers.Log.Warnw("email disabled, reset code not delivered", "user", user.User_ID)
		return nil
	}
	if err := mail.SendPasswordResetEmail(user.Email, code, user.Name); err != nil {
		return err
	}

	initializers.Log.Infow("password reset code sent", "user", user.User_ID)
	return nil
}

// ResetPassword checks the latest reset code and replaces the password. All
// sessions of the user are revoked.
func ResetPassword(ctx context.Context, body models.ResetPasswordRequest) error {
	user, found, err := findUser(ctx, goqu.C("email").Eq(normalizeEmail(body.Email)))
	if err != nil {
		return err
	}
	if !found {
		return Authf("Invalid email or reset code")
	}

	var resetToken models.PasswordResetToken
	found, err = initializers.DB.From(resetTokenTable).
		Where(
			goqu.C("user_id").Eq(user.User_ID),
			goqu.C("used").IsFalse(),
			goqu.C("expires_at").Gt(now()),
		).
		Order(goqu.C("created_at").Desc()).
		ScanStructContext(ctx, &resetToken)
	if err != nil {
		return fmt.Errorf("find reset code: %w", err)
	}
	if !found {
		return Authf("Invalid or expired reset code")
	}
	if resetToken.Attempts >= maxResetAttempts {
		return Authf("Maximum verification attempts exceeded. Please request a new code.")
	}

	if resetToken.Code != body.Token {
		_, err := initializers.DB.Update(resetTokenTable).
			Set(goqu.Record{"attempts": resetToken.Attempts + 1}).
			Where(goqu.C("token_id").Eq(resetToken.Token_ID)).
			Executor().ExecContext(ctx)
		if err != nil {
			initializers.Log.Warnw("failed to count reset attempt", "token", resetToken.Token_ID, "error", err)
		}
		return Authf("Invalid or expired reset code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = initializers.DB.Update(userTable).
		Set(goqu.Record{"password": string(hash), "updated_at": goqu.L("NOW()")}).
		Where(goqu.C("user_id").Eq(user.User_ID)).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	_, err = initializers.DB.Update(resetTokenTable).
		Set(goqu.Record{"used": true}).
		Where(goqu.C("user_id").Eq(user.User_ID)).
		Executor().ExecContext(ctx)
	if err != nil {
		initializers.Log.Warnw("failed to mark reset codes used", "user", user.User_ID, "error", err)
	}

	if err := initializers.Sessions.DeleteAllForUser(ctx, user.User_ID); err != nil {
		initializers.Log.Warnw("failed to revoke sessions", "user", user.User_ID, "error", err)
	}

	initializers.Log.Infow("password reset", "user", user.User_ID)
	return nil
}

func findUser(ctx context.Context, where exp.Expression) (models.User, bool, error) {
	var user models.User
	found, err := initializers.DB.From(userTable).Where(where).ScanStructContext(ctx, &user)
	if err != nil {
		return user, false, fmt.Errorf("find user: %w", err)
	}
	return user, found, nil
}

// generate6DigitCode returns a cryptographically random code with leading zeros.
func generate6DigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
