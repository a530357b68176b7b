package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/store"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
)

// Claims is the JWT payload issued on login.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// AuthService authenticates users and issues the bearer tokens the API
// middleware verifies.
type AuthService struct {
	users    *store.UsersStore
	secret   []byte
	tokenTTL time.Duration
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewAuthService(users *store.UsersStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   zap.S().Named("services.auth"),
	}
}

// Login verifies the credentials and returns a signed token for the user.
// Wrong usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if srvErrors.IsResourceNotFoundError(err) {
		return "", nil, srvErrors.NewUnauthorizedError()
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Infow("rejected login", "username", username)
		return "", nil, srvErrors.NewUnauthorizedError()
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Roles:    user.AllRoles(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses a bearer token and loads its user. Tokens for
// soft-deleted accounts stop working immediately.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, srvErrors.NewUnauthorizedError()
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, srvErrors.NewUnauthorizedError()
	}

	user, err := s.users.FindByID(ctx, id)
	if srvErrors.IsResourceNotFoundError(err) {
		return nil, srvErrors.NewUnauthorizedError()
	}
	if err != nil {
		return nil, err
	}
	if user.SoftDeleted {
		return nil, srvErrors.NewUnauthorizedError()
	}
	return user, nil
}

// CreateUser validates and stores a new account with a bcrypt password.
func (s *AuthService) CreateUser(ctx context.Context, user *models.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.Password = string(hash)
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}

	if err := s.validate.Struct(user); err != nil {
		return err
	}
	return s.users.Create(ctx, user)
}
