package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careboard/careboard/internal/platform/auth"
)

var validRoles = map[string]bool{
	RoleAdmin:     true,
	RolePhysician: true,
	RoleNurse:     true,
}

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

// Service implements account registration and authentication.
type Service struct {
	repo   Repository
	issuer *auth.Issuer
}

func NewService(repo Repository, issuer *auth.Issuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

func (s *Service) SignUp(ctx context.Context, in *SignUpInput) (*User, error) {
	if err := validateSignUp(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Age:          in.Age,
		Gender:       in.Gender,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, in *LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadPassword
		}
		return nil, err
	}
	if !verifyPassword(in.Password, u.PasswordHash) {
		return nil, ErrBadPassword
	}
	token, err := s.issuer.IssueToken(u.ID.String(), u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, User: u}, nil
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile changes name, age and gender. Email, role and password are
// not editable through the profile.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName string, age int, gender *string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if firstName == "" {
		return nil, fmt.Errorf("first name is required")
	}
	if age < 0 || age > 150 {
		return nil, fmt.Errorf("age must be between 0 and 150")
	}
	if gender != nil && !validGenders[*gender] {
		return nil, fmt.Errorf("invalid gender: %s", *gender)
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.Age = age
	u.Gender = gender
	u.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func validateSignUp(in *SignUpInput) error {
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return fmt.Errorf("valid email is required")
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if in.Password != in.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	if in.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if in.Age < 0 || in.Age > 150 {
		return fmt.Errorf("age must be between 0 and 150")
	}
	if in.Gender != nil && !validGenders[*in.Gender] {
		return fmt.Errorf("invalid gender: %s", *in.Gender)
	}
	if !validRoles[in.Role] {
		return fmt.Errorf("invalid role: %s", in.Role)
	}
	return nil
}

// hashPassword returns "salt$digest", both hex, using salted SHA-256.
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := sha256.Sum256(append(salt, []byte(password)...))
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(digest[:]), nil
}

func verifyPassword(password, stored string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	digest := sha256.Sum256(append(salt, []byte(password)...))
	return subtle.ConstantTimeCompare(digest[:], want) == 1
}
