package storage

import (
	"errors"
	"testing"

	"civicportal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return store
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.LoadAuth(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	rec := AuthRecord{
		Token:      "tok-123",
		User:       &models.User{ID: "u1", Name: "Alice", Role: models.RoleCitizen},
		Role:       models.RoleCitizen,
		IsApproved: true,
	}
	if err := store.SaveAuth(rec); err != nil {
		t.Fatalf("save auth: %v", err)
	}

	loaded, err := store.LoadAuth()
	if err != nil {
		t.Fatalf("load auth: %v", err)
	}
	if loaded.Token != rec.Token {
		t.Fatalf("expected token %q got %q", rec.Token, loaded.Token)
	}
	if loaded.User == nil || loaded.User.ID != "u1" {
		t.Fatalf("expected user u1, got %+v", loaded.User)
	}
	if !loaded.Complete() {
		t.Fatal("expected loaded record to be complete")
	}

	if err := store.ClearAuth(); err != nil {
		t.Fatalf("clear auth: %v", err)
	}
	if _, err := store.LoadAuth(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
	// Clearing twice is fine.
	if err := store.ClearAuth(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestAuthRecord_Complete(t *testing.T) {
	user := &models.User{ID: "u1"}
	cases := []struct {
		name string
		rec  *AuthRecord
		want bool
	}{
		{"nil record", nil, false},
		{"token only", &AuthRecord{Token: "t"}, false},
		{"user only", &AuthRecord{User: user}, false},
		{"both", &AuthRecord{Token: "t", User: user}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.Complete(); got != tc.want {
				t.Fatalf("Complete() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFileStore_Language(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Language(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.SaveLanguage("rw"); err != nil {
		t.Fatalf("save language: %v", err)
	}
	lang, err := store.Language()
	if err != nil {
		t.Fatalf("load language: %v", err)
	}
	if lang != "rw" {
		t.Fatalf("expected language rw got %q", lang)
	}
}
