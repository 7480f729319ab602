package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careboard/careboard/internal/platform/auth"
)

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return NewService(repo, issuer), repo
}

func validSignUp() *SignUpInput {
	return &SignUpInput{
		Email:           "nurse@example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		FirstName:       "Anita",
		LastName:        "Desai",
		Age:             34,
		Role:            RoleNurse,
	}
}

func TestSignUp(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.SignUp(context.Background(), validSignUp())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if u.PasswordHash == "" || strings.Contains(u.PasswordHash, "correct-horse") {
		t.Error("password must be stored hashed")
	}
	if _, ok := repo.users[u.ID]; !ok {
		t.Error("user not persisted")
	}
}

func TestSignUp_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := map[string]func(*SignUpInput){
		"missing email":     func(in *SignUpInput) { in.Email = "" },
		"malformed email":   func(in *SignUpInput) { in.Email = "not-an-email" },
		"short password":    func(in *SignUpInput) { in.Password = "short"; in.ConfirmPassword = "short" },
		"mismatch":          func(in *SignUpInput) { in.ConfirmPassword = "different-pass" },
		"missing name":      func(in *SignUpInput) { in.FirstName = "" },
		"invalid role":      func(in *SignUpInput) { in.Role = "superuser" },
		"age out of bounds": func(in *SignUpInput) { in.Age = 200 },
	}
	for name, mutate := range cases {
		in := validSignUp()
		mutate(in)
		if _, err := svc.SignUp(ctx, in); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, validSignUp()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := validSignUp()
	in.Email = "Nurse@Example.com" // normalized before lookup
	if _, err := svc.SignUp(ctx, in); err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.SignUp(ctx, validSignUp())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess, err := svc.Login(ctx, &LoginInput{Email: "nurse@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected a token")
	}
	if sess.User.ID != u.ID {
		t.Error("session user mismatch")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, validSignUp()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Login(ctx, &LoginInput{Email: "nurse@example.com", Password: "wrong"}); err != ErrBadPassword {
		t.Errorf("expected ErrBadPassword, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Login(context.Background(), &LoginInput{Email: "ghost@example.com", Password: "whatever"}); err != ErrBadPassword {
		t.Errorf("expected ErrBadPassword, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.SignUp(ctx, validSignUp())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.UpdateProfile(ctx, u.ID, "Anita", "Sharma", 35, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LastName != "Sharma" || got.Age != 35 {
		t.Errorf("profile not updated: %+v", got)
	}
	if got.Email != "nurse@example.com" {
		t.Error("email must not change through profile update")
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, err := hashPassword("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := hashPassword("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("hashes of the same password must differ by salt")
	}
	if !verifyPassword("same-password", h1) || !verifyPassword("same-password", h2) {
		t.Error("verification failed for valid password")
	}
	if verifyPassword("other-password", h1) {
		t.Error("verification passed for wrong password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if verifyPassword("anything", "not-a-valid-hash") {
		t.Error("malformed hash must not verify")
	}
	if verifyPassword("anything", "zz$zz") {
		t.Error("non-hex hash must not verify")
	}
}
