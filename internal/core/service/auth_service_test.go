package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

func TestAuthService_Register_Success(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(stubProfileRepo{store}, "secret", time.Hour)

	p, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "Alice@Example.com",
		Password: "pass1234",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if p == nil {
		t.Fatalf("expected profile, got nil")
	}
	if p.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %s", p.Email)
	}
	if p.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if p.Role != domain.RoleClient {
		t.Fatalf("unexpected role: %s", p.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(stubProfileRepo{store}, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "", Password: "pass1234"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.ma", Password: "short"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(stubProfileRepo{store}, "secret", time.Hour)
	in := ports.RegisterInput{Email: "bob@example.com", Password: "pass1234"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(stubProfileRepo{store}, "secret", time.Hour)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{Email: "carol@example.com", Password: "pass1234"})
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}

	token, p, err := svc.Login(context.Background(), "CAROL@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if p.ID != registered.ID {
		t.Fatalf("unexpected profile: %+v", p)
	}

	parsed, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil {
		t.Fatalf("token parse error: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	if claims["role"] != string(domain.RoleClient) {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(stubProfileRepo{store}, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "pass1234"}); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "wrong-pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "pass1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestProfileService_UpdateMe(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-9", domain.RoleClient)
	svc := NewProfileService(stubProfileRepo{store})
	caller := ports.Actor{UserID: "user-9"}

	phone := " +212600000000 "
	p, err := svc.UpdateMe(context.Background(), caller, ports.UpdateProfileInput{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateMe returned error: %v", err)
	}
	if p.Phone != "+212600000000" {
		t.Fatalf("unexpected phone: %q", p.Phone)
	}
	if store.profiles["user-9"].Role != domain.RoleClient {
		t.Fatalf("role must not change")
	}

	if _, err := svc.Me(context.Background(), ports.Actor{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
