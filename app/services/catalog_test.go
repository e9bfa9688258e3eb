package services

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	_ "github.com/shashiranjanraj/catalog-ingest/database/migrations"
	"github.com/shashiranjanraj/catalog-ingest/pkg/database"
	"github.com/shashiranjanraj/catalog-ingest/pkg/migration"
)

// newCatalog returns a migrated in-memory catalog with the gender rows in
// place. Each test gets its own database.
func newCatalog(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(database.Options{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())
	for _, g := range Genders() {
		require.NoError(t, db.Create(&models.Gender{
			ID:          GenderIDs[g],
			Name:        string(g),
			PrettyName:  string(g),
			Description: string(g),
		}).Error)
	}
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }
