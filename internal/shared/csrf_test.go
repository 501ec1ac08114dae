package shared

import (
	"context"
	"errors"
	"testing"
)

func TestCSRFTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewCSRFManager("secret")
	sess := &Session{ID: "s1"}

	token, err := m.EnsureToken(ctx, sess)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}
	again, err := m.EnsureToken(ctx, sess)
	if err != nil {
		t.Fatalf("ensure token again: %v", err)
	}
	if token != again {
		t.Fatalf("expected stable token, got %q then %q", token, again)
	}
	if err := m.VerifyToken(ctx, sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := m.VerifyToken(ctx, sess, token+"x"); !errors.Is(err, ErrCSRFTokenMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := m.VerifyToken(ctx, sess, ""); !errors.Is(err, ErrCSRFTokenMissing) {
		t.Fatalf("expected missing, got %v", err)
	}
}

func TestCSRFRequiresSession(t *testing.T) {
	m := NewCSRFManager("secret")
	if _, err := m.EnsureToken(context.Background(), nil); err == nil {
		t.Fatal("expected error without session")
	}
	if err := m.VerifyToken(context.Background(), &Session{ID: "fresh"}, "anything"); !errors.Is(err, ErrCSRFTokenMissing) {
		t.Fatalf("expected missing for session without token, got %v", err)
	}
}
