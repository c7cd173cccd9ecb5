package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rafthq/raftline/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterInput{
		Email:       "founder@raft.io",
		DisplayName: "Raft Founder",
		Role:        domain.RoleFounder,
		Password:    "Passw0rd!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected an access token")
	}
	if resp.User.KYCStatus != domain.VerificationNotSubmitted {
		t.Errorf("fresh user KYC status = %q, want not_submitted", resp.User.KYCStatus)
	}
	if resp.User.PasswordHash == "Passw0rd!" {
		t.Error("password must not be stored in the clear")
	}

	login, err := svc.Login(ctx, LoginInput{Email: "founder@raft.io", Password: "Passw0rd!"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("login should return the registered user")
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "founder@raft.io", Password: "wrong"}); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("expected ErrInvalidCreds on a bad password, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@raft.io", Password: "Passw0rd!"}); !errors.Is(err, ErrInvalidCreds) {
		t.Errorf("expected ErrInvalidCreds on an unknown email, got %v", err)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	input := RegisterInput{Email: "dup@raft.io", DisplayName: "Dup", Role: domain.RoleVC, Password: "Passw0rd!"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "evil@raft.io",
		DisplayName: "Evil",
		Role:        domain.RoleAdmin,
		Password:    "Passw0rd!",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("admin self-registration should fail with ErrInvalidRole, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if !verifyPassword("Passw0rd!", hash) {
		t.Error("correct password should verify")
	}
	if verifyPassword("other", hash) {
		t.Error("wrong password must not verify")
	}
	if verifyPassword("Passw0rd!", "not-a-hash") {
		t.Error("garbage hash must not verify")
	}

	// Salted: the same password hashes differently each time.
	hash2, _ := hashPassword("Passw0rd!")
	if hash == hash2 {
		t.Error("expected salted hashes to differ")
	}
}

func TestCompleteProfile(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret")
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterInput{
		Email: "f@raft.io", DisplayName: "F", Role: domain.RoleFounder, Password: "Passw0rd!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if domain.NextStep(resp.User) != domain.StepRegister {
		t.Error("fresh user should still be at the register step")
	}

	if err := svc.CompleteProfile(ctx, resp.User.ID); err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	user, _ := users.GetByID(ctx, resp.User.ID)
	if domain.NextStep(user) != domain.StepVerification {
		t.Error("completed profile should advance to verification")
	}
}
