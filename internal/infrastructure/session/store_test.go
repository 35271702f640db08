package session

import (
	"path/filepath"
	"testing"

	"galleryadmin/internal/infrastructure/database"
)

func openTestDB(t *testing.T, path string) *database.DB {
	t.Helper()
	db, err := database.New(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestTokenRoundtrip(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "session.db"))

	store, err := NewStore(db, "test-secret")
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if store.Token() != "" {
		t.Errorf("Fresh store should hold no token, got %q", store.Token())
	}

	if err := store.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	if store.Token() != "tok-123" {
		t.Errorf("Token() = %q, want tok-123", store.Token())
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if store.Token() != "" {
		t.Errorf("Cleared store should hold no token, got %q", store.Token())
	}
}

func TestTokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	db := openTestDB(t, path)

	store, err := NewStore(db, "test-secret")
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := store.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	reopened, err := NewStore(db, "test-secret")
	if err != nil {
		t.Fatalf("NewStore() on existing slot failed: %v", err)
	}
	if reopened.Token() != "tok-123" {
		t.Errorf("Reopened store should hold the persisted token, got %q", reopened.Token())
	}
}

func TestChangedSecretClearsSlot(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "session.db"))

	store, err := NewStore(db, "secret-one")
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := store.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	reopened, err := NewStore(db, "secret-two")
	if err != nil {
		t.Fatalf("NewStore() with changed secret failed: %v", err)
	}
	if reopened.Token() != "" {
		t.Errorf("Unopenable token must be discarded, got %q", reopened.Token())
	}

	// The slot stays usable with the new secret.
	if err := reopened.SetToken("tok-456"); err != nil {
		t.Fatalf("SetToken() after clear failed: %v", err)
	}
	again, err := NewStore(db, "secret-two")
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if again.Token() != "tok-456" {
		t.Errorf("Expected tok-456 after re-seal, got %q", again.Token())
	}
}
