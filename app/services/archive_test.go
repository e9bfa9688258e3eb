package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog-ingest/pkg/storage"
	"github.com/shashiranjanraj/catalog-ingest/pkg/workerpool"
)

func TestArchivePath(t *testing.T) {
	at := time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "batches/2024/03/02/abc.json", ArchivePath("abc", at))
}

func TestArchiver_WritesBody(t *testing.T) {
	ctx := context.Background()
	disk, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	pool := workerpool.New(1, 4)

	a := NewArchiver(disk, pool)
	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return day }

	body := []byte(`[{"productId":"p1"}]`)
	a.Archive(ctx, "b-1", body)
	body[0] = 'X' // the archived copy must not alias the request buffer

	require.NoError(t, pool.Shutdown(ctx))

	got, err := disk.Get(ctx, "batches/2024/03/01/b-1.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"productId":"p1"}]`, string(got))

	files, err := a.List(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"batches/2024/03/01/b-1.json"}, files)
}

func TestArchiver_NilIsNoop(t *testing.T) {
	var a *Archiver
	assert.NotPanics(t, func() { a.Archive(context.Background(), "b", []byte(`[]`)) })
}

func TestArchiver_ClosedPoolDrops(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	pool := workerpool.New(1, 1)
	require.NoError(t, pool.Shutdown(context.Background()))

	a := NewArchiver(disk, pool)
	a.Archive(context.Background(), "b", []byte(`[]`))
	assert.False(t, disk.Exists(context.Background(), ArchivePath("b", a.now())))
}
