package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/focodev/site/backend/internal/config"
	"github.com/focodev/site/backend/internal/models"
)

// SessionState is the outcome of verifying a request's credentials.
type SessionState int

const (
	Unauthenticated SessionState = iota
	Authenticated
	AuthenticatedAdmin
)

func (s SessionState) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case AuthenticatedAdmin:
		return "admin"
	default:
		return "unauthenticated"
	}
}

// Principal is the user identity carried by a session token.
type Principal struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Session is the verified view of a request. The zero value is
// Unauthenticated.
type Session struct {
	State SessionState
	User  Principal
}

func (s Session) IsAuthenticated() bool { return s.State != Unauthenticated }
func (s Session) IsAdmin() bool         { return s.State == AuthenticatedAdmin }

// Claims is the JWT payload for a session.
type Claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, cfg config.Config) *AuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthService{db: db, secret: []byte(cfg.SessionSecret), ttl: ttl, now: time.Now}
}

// TTL is how long issued tokens stay valid.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// GenerateToken signs an HS256 token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, algorithm and expiry.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Resolve maps a raw token to a Session. Anything that fails verification
// is Unauthenticated.
func (s *AuthService) Resolve(tokenString string) Session {
	if tokenString == "" {
		return Session{}
	}
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return Session{}
	}

	session := Session{
		State: Authenticated,
		User: Principal{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		},
	}
	if claims.Role == models.RoleAdmin {
		session.State = AuthenticatedAdmin
	}
	return session
}

// ChangePassword replaces the password of userID after checking current.
func (s *AuthService) ChangePassword(userID, current, next string) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return ErrIncorrectPassword
	}
	if err := user.SetPassword(next); err != nil {
		return err
	}
	return s.db.Model(&user).Update("password_hash", user.PasswordHash).Error
}
