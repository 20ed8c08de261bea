package services

import (
	"errors"
	"time"

	"academy-server/models"
	"academy-server/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Claims is the JWT payload issued at login.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// AuthService registers users and verifies credentials. Passwords are
// stored as bcrypt hashes; comparison happens inside bcrypt.
type AuthService struct {
	store  storage.Store
	secret []byte
}

func NewAuthService(store storage.Store, secret string) *AuthService {
	return &AuthService{store: store, secret: []byte(secret)}
}

// Register creates a user after uniqueness checks on email and username.
// The returned token logs the new user straight in.
func (s *AuthService) Register(in models.InsertUser) (*models.User, string, error) {
	if existing, err := s.store.GetUserByEmail(in.Email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", ErrEmailTaken
	}
	if existing, err := s.store.GetUserByUsername(in.Username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	in.Password = string(hash)

	user, err := s.store.CreateUser(in)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user)
	return user, token, err
}

// Login verifies the email/password pair and returns the user with a fresh
// token. Missing user and wrong password are indistinguishable to callers.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(user)
	return user, token, err
}

func (s *AuthService) issueToken(u *models.User) (string, error) {
	claims := Claims{
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
