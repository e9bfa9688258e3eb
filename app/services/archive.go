package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/metrics"
	"github.com/shashiranjanraj/catalog-ingest/pkg/storage"
	"github.com/shashiranjanraj/catalog-ingest/pkg/workerpool"
)

// archiveTimeout bounds one archive write.
const archiveTimeout = 30 * time.Second

// Archiver keeps a copy of every accepted request body. Writes happen on the
// pool and never affect the response; failures are only logged. A nil
// *Archiver archives nothing.
type Archiver struct {
	disk storage.Disk
	pool *workerpool.Pool
	now  func() time.Time
}

func NewArchiver(disk storage.Disk, pool *workerpool.Pool) *Archiver {
	return &Archiver{disk: disk, pool: pool, now: time.Now}
}

// ArchivePath is where the body of batchID received at t is stored.
func ArchivePath(batchID string, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("batches/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), batchID)
}

// Archive queues body for writing under batchID.
func (a *Archiver) Archive(ctx context.Context, batchID string, body []byte) {
	if a == nil {
		return
	}

	log := logger.WithCtx(ctx).With("batch_id", batchID)
	path := ArchivePath(batchID, a.now())
	data := append([]byte(nil), body...)

	err := a.pool.Submit(func(poolCtx context.Context) {
		wctx, cancel := context.WithTimeout(poolCtx, archiveTimeout)
		defer cancel()

		if err := a.disk.Put(wctx, path, data); err != nil {
			metrics.ArchiveWrites.WithLabelValues("error").Inc()
			log.Warn("archive write failed", "path", path, "error", err)
			return
		}
		metrics.ArchiveWrites.WithLabelValues("ok").Inc()
		log.Debug("batch archived", "path", path)
	})
	if err != nil {
		metrics.ArchiveWrites.WithLabelValues("dropped").Inc()
		if errors.Is(err, workerpool.ErrPoolFull) {
			log.Warn("archive queue full, batch not archived")
			return
		}
		log.Warn("archive unavailable", "error", err)
	}
}

// List returns archived batch paths for day (UTC).
func (a *Archiver) List(ctx context.Context, day time.Time) ([]string, error) {
	day = day.UTC()
	dir := fmt.Sprintf("batches/%04d/%02d/%02d", day.Year(), day.Month(), day.Day())
	return a.disk.AllFiles(ctx, dir)
}
