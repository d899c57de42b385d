package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/teacherly/teacherly-backend/internal/config"
	"github.com/teacherly/teacherly-backend/internal/mailer"
	"github.com/teacherly/teacherly-backend/internal/model"
	"github.com/teacherly/teacherly-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("user account is inactive")
)

// User-facing flow messages. The forgot-password message is identical on
// every path so responses never reveal whether an account exists.
const (
	MsgResetRequested = "If an account with that email exists, a password reset link has been sent."
	MsgResetSuccess   = "Password has been successfully reset."
)

// TokenType distinguishes session tokens from password-reset tokens so one
// can never be redeemed as the other.
type TokenType string

const (
	TokenTypeAccess TokenType = "access"
	TokenTypeReset  TokenType = "reset"
)

// Claims extends JWT standard claims with the token's purpose.
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"token_type"`
}

// UserStore is the user persistence surface the auth flows need.
// *repository.UserRepository satisfies it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id int, patch model.UserPatch) (*model.User, error)
}

// AuthService handles registration, login, JWT issuance and the
// forgot/reset-password flow.
type AuthService struct {
	cfg   *config.Config
	users UserStore
	mail  mailer.Mailer
	log   zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, users UserStore, mail mailer.Mailer, log zerolog.Logger) *AuthService {
	return &AuthService{cfg: cfg, users: users, mail: mail, log: log}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash. Any
// failure, including a malformed stored hash, resolves to
// ErrInvalidCredentials rather than an internal error.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueAccessToken creates a signed session JWT with the user ID as subject.
func (s *AuthService) IssueAccessToken(userID int) (string, error) {
	return s.signToken(strconv.Itoa(userID), TokenTypeAccess, s.cfg.AccessTokenTTL)
}

// IssueResetToken creates a signed password-reset JWT with the email as
// subject. Reset tokens expire sooner than access tokens.
func (s *AuthService) IssueResetToken(email string) (string, error) {
	return s.signToken(email, TokenTypeReset, s.cfg.ResetTokenTTL)
}

func (s *AuthService) signToken(subject string, typ TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: typ,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken validates a session JWT and returns the user ID it was
// issued for. Every failure mode — bad signature, expiry, wrong token type,
// non-integer subject, malformed structure — collapses to ErrInvalidToken.
func (s *AuthService) VerifyAccessToken(tokenStr string) (int, error) {
	claims, err := s.parseToken(tokenStr)
	if err != nil || claims.TokenType != TokenTypeAccess {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// VerifyResetToken validates a password-reset JWT and returns the email it
// was issued for. Failures collapse to ErrInvalidResetToken.
func (s *AuthService) VerifyResetToken(tokenStr string) (string, error) {
	claims, err := s.parseToken(tokenStr)
	if err != nil || claims.TokenType != TokenTypeReset {
		return "", ErrInvalidResetToken
	}
	if !strings.Contains(claims.Subject, "@") {
		return "", ErrInvalidResetToken
	}
	return claims.Subject, nil
}

func (s *AuthService) parseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Register creates a new account with the default teacher role. Returns
// ErrDuplicateEmail if the address is already registered.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         model.RoleTeacher,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token. A missing account,
// a deactivated account and a wrong password all return
// ErrInvalidCredentials so callers cannot tell which factor failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup email: %w", err)
	}
	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueAccessToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword emails a reset link if the account exists and is active.
// It succeeds regardless: the caller always shows MsgResetRequested, and
// delivery problems are logged rather than surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Info().Str("email", email).Msg("Password reset requested for unknown account")
			return nil
		}
		return fmt.Errorf("lookup email: %w", err)
	}
	if !user.IsActive {
		s.log.Info().Str("email", email).Msg("Password reset requested for inactive account")
		return nil
	}

	token, err := s.IssueResetToken(user.Email)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password/%s", strings.TrimRight(s.cfg.FrontendURL, "/"), token)
	body := s.resetEmailBody(user.FullName, resetLink)

	if err := s.mail.Send(ctx, "Reset Your Password for Teacherly", user.Email, body); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("Failed to send password reset email")
		return nil
	}

	s.log.Info().Str("email", email).Msg("Password reset email sent")
	return nil
}

// ResetPassword redeems a reset token and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.VerifyResetToken(token)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Should not happen for a validly issued token; the account
			// vanished between issuance and redemption.
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup email: %w", err)
	}
	if !user.IsActive {
		return ErrInactiveUser
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.users.Update(ctx, user.ID, model.UserPatch{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info().Str("email", email).Msg("Password reset completed")
	return nil
}

func (s *AuthService) resetEmailBody(fullName, resetLink string) string {
	name := fullName
	if name == "" {
		name = "there"
	}
	minutes := int(s.cfg.ResetTokenTTL.Minutes())
	return fmt.Sprintf(`<html>
<body>
	<p>Hi %s,</p>
	<p>You requested a password reset for your Teacherly account.</p>
	<p>Click the link below to set a new password:</p>
	<p><a href="%s">%s</a></p>
	<p>This link will expire in %d minutes.</p>
	<p>If you did not request a password reset, please ignore this email.</p>
	<p>Thanks,</p>
	<p>The Teacherly Team</p>
</body>
</html>`, name, resetLink, resetLink, minutes)
}
