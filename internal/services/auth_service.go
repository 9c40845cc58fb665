package services

import (
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccessClaims is the payload carried by both access and refresh tokens.
type AccessClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	userRepo  *repositories.UserRepository
	auditSvc  *AuditService
	signKey   *rsa.PrivateKey
	verifyKey *rsa.PublicKey

	accessTTL  time.Duration
	refreshTTL time.Duration
	maxFailed  int
	bcryptCost int
}

func NewAuthService(db *gorm.DB, auditSvc *AuditService, signKey *rsa.PrivateKey, accessTTL, refreshTTL time.Duration, maxFailed, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   repositories.NewUserRepository(db),
		auditSvc:   auditSvc,
		signKey:    signKey,
		verifyKey:  &signKey.PublicKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		maxFailed:  maxFailed,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new STUDENT account. The public endpoint never
// grants another role.
func (s *AuthService) Register(email, password, ip, userAgent string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.auditSvc.Record(&user.ID, "USER_REGISTERED", email, ip, userAgent); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser provisions an account with an arbitrary role. Reserved
// for admins; the public Register path cannot grant roles.
func (s *AuthService) CreateUser(email, password string, role models.Role, actorID uuid.UUID, ip, userAgent string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q: %w", role, ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.auditSvc.Record(&actorID, "USER_CREATED", fmt.Sprintf("%s (%s)", email, role), ip, userAgent); err != nil {
		return nil, err
	}

	return user, nil
}

// Login validates credentials and issues a token pair. A locked
// account is rejected before the password is even checked, so probing
// a locked account leaks nothing about the password.
func (s *AuthService) Login(email, password, ip, userAgent string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.IsLocked {
		if err := s.auditSvc.Record(&user.ID, "LOGIN_BLOCKED", "account locked", ip, userAgent); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if err := s.recordFailedAttempt(user, ip, userAgent); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrInvalidCredentials
	}

	// Successful password check clears the failure counter.
	if user.FailedLoginAttempts > 0 {
		if err := s.userRepo.Update(user.ID, map[string]interface{}{"failed_login_attempts": 0}); err != nil {
			return nil, nil, fmt.Errorf("failed to reset login attempts: %w", err)
		}
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.auditSvc.Record(&user.ID, "LOGIN_SUCCESS", email, ip, userAgent); err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *AuthService) recordFailedAttempt(user *models.User, ip, userAgent string) error {
	attempts := user.FailedLoginAttempts + 1
	updates := map[string]interface{}{"failed_login_attempts": attempts}
	if attempts >= s.maxFailed {
		updates["is_locked"] = true
	}
	if err := s.userRepo.Update(user.ID, updates); err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	action := "LOGIN_FAILED"
	if attempts >= s.maxFailed {
		action = "ACCOUNT_LOCKED"
	}
	return s.auditSvc.Record(&user.ID, action, fmt.Sprintf("attempt %d", attempts), ip, userAgent)
}

// Refresh rotates the token pair. The presented refresh token must
// match the bcrypt hash stored at issue time; rotation invalidates the
// old token.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrAccessDenied
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, ErrAccessDenied
	}

	if user.HashedRefreshToken == nil {
		return nil, ErrAccessDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedRefreshToken), tokenDigest(refreshToken)); err != nil {
		return nil, ErrAccessDenied
	}

	return s.issueTokens(user)
}

// Logout clears the stored refresh hash so the outstanding refresh
// token can no longer be redeemed.
func (s *AuthService) Logout(userID uuid.UUID, ip, userAgent string) error {
	if err := s.userRepo.Update(userID, map[string]interface{}{"hashed_refresh_token": nil}); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return s.auditSvc.Record(&userID, "LOGOUT", "", ip, userAgent)
}

// ParseToken verifies signature and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.verifyKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := s.signToken(user, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.signToken(user, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	// bcrypt caps input at 72 bytes, so hash a fixed-size digest of the
	// token rather than the token itself.
	hash, err := bcrypt.GenerateFromPassword(tokenDigest(refresh), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}
	hashStr := string(hash)
	if err := s.userRepo.Update(user.ID, map[string]interface{}{"hashed_refresh_token": hashStr}); err != nil {
		return nil, fmt.Errorf("failed to store refresh hash: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func tokenDigest(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

func (s *AuthService) signToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.signKey)
}
