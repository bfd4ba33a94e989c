package out_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	sessionadapter "careercompass/internal/modules/session/adapter/out"
	"careercompass/internal/modules/session/domain"
	sessionout "careercompass/internal/modules/session/port/out"
	apperrors "careercompass/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func newStores(t *testing.T) map[string]sessionout.Store {
	t.Helper()
	dir := t.TempDir()
	sqliteStore, err := sessionadapter.NewSQLiteLocalStore(filepath.Join(dir, "cc.db"), fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	return map[string]sessionout.Store{
		"sqlite": sqliteStore,
		"file":   sessionadapter.NewFileSessionStore(filepath.Join(dir, "session.json")),
	}
}

func TestStoresSaveLoadClear(t *testing.T) {
	t.Parallel()
	for name, store := range newStores(t) {
		ctx := context.Background()
		if _, err := store.Load(ctx); err != apperrors.ErrNoSession {
			t.Fatalf("%s: expected no session on empty store, got %v", name, err)
		}

		want := domain.Session{StudentID: "12", StudentName: "Ada", TargetCareer: "Data Scientist"}
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if got != want {
			t.Fatalf("%s: expected %+v, got %+v", name, want, got)
		}

		want.StudentName = "Ada L."
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		if got, _ := store.Load(ctx); got.StudentName != "Ada L." {
			t.Fatalf("%s: expected overwritten name, got %+v", name, got)
		}

		if err := store.Clear(ctx); err != nil {
			t.Fatalf("%s: clear: %v", name, err)
		}
		if _, err := store.Load(ctx); err != apperrors.ErrNoSession {
			t.Fatalf("%s: expected no session after clear, got %v", name, err)
		}
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("%s: second clear must be a no-op: %v", name, err)
		}
	}
}

func TestSQLiteStoreKeepsThreeKeysAndClearsAllRows(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "nested", "cc.db")
	store, err := sessionadapter.NewSQLiteLocalStore(dbPath, fixedClock{t: time.Now()})
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, domain.Session{StudentID: "3", StudentName: "Lin", TargetCareer: "Frontend Dev"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM local_storage`).Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected three stored keys, got %d", count)
	}
	if _, err := db.Exec(`INSERT INTO local_storage (key, value, updated_at) VALUES ('theme', 'dark', 'x')`); err != nil {
		t.Fatalf("insert foreign key: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM local_storage`).Scan(&count); err != nil {
		t.Fatalf("count rows after clear: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty local storage after clear, got %d rows", count)
	}
}

func TestFileStoreTreatsMissingIDAsNoSession(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"studentName":"Ghost"}`), 0o600); err != nil {
		t.Fatalf("write session: %v", err)
	}
	if _, err := sessionadapter.NewFileSessionStore(path).Load(context.Background()); err != apperrors.ErrNoSession {
		t.Fatalf("expected no session, got %v", err)
	}
}
