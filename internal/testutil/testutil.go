// Package testutil provides shared test helpers for setting up databases
// and seeded task data.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SeedTask inserts an inbox task with the given title and position key.
// pos < 0 leaves the task unkeyed.
func SeedTask(t *testing.T, db *store.DB, title string, pos int32) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if pos >= 0 {
		task.Pos = &pos
	}
	if err := db.InsertTask(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	return task
}

// SeedProject inserts a project with the given name and position key under
// the optional area. pos < 0 leaves the project unkeyed.
func SeedProject(t *testing.T, db *store.DB, name, areaID string, pos int32) *models.Project {
	t.Helper()
	project := &models.Project{
		ID:        uuid.NewString(),
		Name:      name,
		AreaID:    areaID,
		CreatedAt: time.Now().UTC(),
	}
	if pos >= 0 {
		project.Pos = &pos
	}
	if err := db.InsertProject(context.Background(), project); err != nil {
		t.Fatal(err)
	}
	return project
}
