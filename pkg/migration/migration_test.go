package migration

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog-ingest/pkg/database"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

type failing struct{}

func (failing) Up(*gorm.DB) error   { return errors.New("boom") }
func (failing) Down(*gorm.DB) error { return nil }

func newRunner(t *testing.T, migrations ...registeredMigration) (*Runner, *bytes.Buffer) {
	t.Helper()
	db, err := database.Open(database.Options{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var out bytes.Buffer
	return &Runner{db: db, out: &out, migrations: migrations}, &out
}

func TestRunner_RunAndRollback(t *testing.T) {
	r, out := newRunner(t, registeredMigration{name: "20240101000000_create_widgets", m: createWidgets{}})

	require.NoError(t, r.Run())
	assert.True(t, r.db.Migrator().HasTable(&widget{}))
	assert.Contains(t, out.String(), "Migrated:  20240101000000_create_widgets")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	require.NoError(t, r.Rollback())
	assert.False(t, r.db.Migrator().HasTable(&widget{}))

	pending, err = r.Pending()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestRunner_FailedMigrationIsNotRecorded(t *testing.T) {
	r, _ := newRunner(t,
		registeredMigration{name: "20240101000000_create_widgets", m: createWidgets{}},
		registeredMigration{name: "20240101000001_broken", m: failing{}},
	)

	err := r.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	pending, err := r.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "20240101000001_broken", pending[0].name)
}

func TestRunner_Status(t *testing.T) {
	r, out := newRunner(t, registeredMigration{name: "20240101000000_create_widgets", m: createWidgets{}})

	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "Pending")
}
