package system

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/storage/sqlite"
)

var errFake = stderrors.New("boom")

var fixedNow = time.Date(2024, 10, 7, 8, 30, 0, 0, time.Local)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:    store,
		Username: "alice",
		Out:      out,
		Now:      func() time.Time { return fixedNow },
	}, out
}

func addAlice(t *testing.T, ctx *cli.Context) {
	t.Helper()
	if err := ctx.Store.AddProfile(models.Profile{Username: "alice", Email: "alice@campus.edu"}); err != nil {
		t.Fatalf("AddProfile() failed: %v", err)
	}
	if err := ctx.Store.AddClassSession(models.ClassSession{
		ID:        "c1",
		Username:  "alice",
		Name:      "Calculus",
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
		Start:     models.NewTimeOfDay(9, 0),
		End:       models.NewTimeOfDay(10, 0),
		FirstDate: time.Date(2024, 9, 2, 0, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("AddClassSession() failed: %v", err)
	}
	if err := ctx.Store.AddAssignment(models.Assignment{ID: "a1", Username: "alice", Name: "Essay", DueDate: "2024-10-09"}); err != nil {
		t.Fatalf("AddAssignment() failed: %v", err)
	}
}
