package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bonube/padron/internal/domain"
	"github.com/bonube/padron/internal/repository/postgres"
)

// Verify that *postgres.DB implements domain.Database at compile time.
var _ domain.Database = (*postgres.DB)(nil)

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"postgresql+psycopg://u:p@host/db", "postgres://u:p@host/db"},
		{"postgresql+psycopg2://u:p@host/db", "postgres://u:p@host/db"},
		{"postgresql://u:p@host/db", "postgres://u:p@host/db"},
		{"postgres://u:p@host/db", "postgres://u:p@host/db"},
	}
	for _, c := range cases {
		if got := postgres.NormalizeDSN(c.in); got != c.want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// newTestDB connects to the Postgres instance named by TEST_DATABASE_URL.
// The remaining tests are integration tests and skip when it is unset.
func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, dsn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.SqlDB.ExecContext(context.Background(), "DELETE FROM usuarios")
		db.Close()
	})
	return db
}

func TestUsuarioRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewUsuarioRepository(db)
	ctx := context.Background()

	telefonos := []string{"5550000001", "5550000002", "5550000003"}
	var lastID int64
	for _, tel := range telefonos {
		u := &domain.Usuario{Nombre: "Ana", Apellido: "García", Telefono: tel}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create %s: %v", tel, err)
		}
		if u.ID <= lastID {
			t.Fatalf("expected increasing ids, got %d after %d", u.ID, lastID)
		}
		lastID = u.ID
	}

	usuarios, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(usuarios) != len(telefonos) {
		t.Fatalf("expected %d usuarios, got %d", len(telefonos), len(usuarios))
	}
	for i := 1; i < len(usuarios); i++ {
		if usuarios[i-1].ID <= usuarios[i].ID {
			t.Fatalf("expected descending ids, got %d before %d", usuarios[i-1].ID, usuarios[i].ID)
		}
	}
}

func TestUsuarioRepository_DuplicateTelefono(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewUsuarioRepository(db)
	ctx := context.Background()

	u1 := &domain.Usuario{Nombre: "Ana", Apellido: "García", Telefono: "5559990001"}
	if err := repo.Create(ctx, u1); err != nil {
		t.Fatalf("Create u1: %v", err)
	}

	u2 := &domain.Usuario{Nombre: "Luis", Apellido: "Pérez", Telefono: "5559990001"}
	if err := repo.Create(ctx, u2); !errors.Is(err, domain.ErrDuplicateTelefono) {
		t.Fatalf("expected ErrDuplicateTelefono, got %v", err)
	}
}

func TestUsuarioRepository_GetByTelefono(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewUsuarioRepository(db)
	ctx := context.Background()

	u := &domain.Usuario{Nombre: "Ana", Apellido: "García", Telefono: "5559990002"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.GetByTelefono(ctx, "5559990002")
	if err != nil {
		t.Fatalf("GetByTelefono: %v", err)
	}
	if found.ID != u.ID {
		t.Fatalf("expected id %d, got %d", u.ID, found.ID)
	}

	if _, err := repo.GetByTelefono(ctx, "0000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSession_ConcurrentDuplicateRace(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Two sessions insert the same telefono; exactly one must win and the
	// loser must see the duplicate sentinel from the unique index.
	tel := fmt.Sprintf("555%d", time.Now().UnixNano()%1e7)

	s1, err := db.Session(ctx)
	if err != nil {
		t.Fatalf("Session 1: %v", err)
	}
	defer s1.Close()
	s2, err := db.Session(ctx)
	if err != nil {
		t.Fatalf("Session 2: %v", err)
	}
	defer s2.Close()

	err1 := s1.Usuarios().Create(ctx, &domain.Usuario{Nombre: "A", Apellido: "B", Telefono: tel})
	err2 := s2.Usuarios().Create(ctx, &domain.Usuario{Nombre: "C", Apellido: "D", Telefono: tel})

	if err1 == nil && err2 == nil {
		t.Fatal("expected one insert to fail with duplicate")
	}
	failed := err1
	if failed == nil {
		failed = err2
	}
	if !errors.Is(failed, domain.ErrDuplicateTelefono) {
		t.Fatalf("expected ErrDuplicateTelefono from loser, got %v", failed)
	}
}
