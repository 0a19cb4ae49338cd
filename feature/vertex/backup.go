package vertex

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"change-detector/core/dataset"
	"change-detector/core/storage"

	"github.com/klauspost/compress/gzip"
)

// BackupKey returns the object key of a snapshot backup taken at the given time.
func BackupKey(prefix, table string, at time.Time) string {
	if i := strings.LastIndex(table, "."); i >= 0 {
		table = table[i+1:]
	}
	return path.Join(prefix, fmt.Sprintf("%s_backup_%s.csv.gz", table, at.Format("2006-01-02_15-04-05")))
}

// Backup writes a gzip-compressed CSV copy of a database snapshot to the given object key.
func Backup(ctx context.Context, client storage.Client, bucket, key string, snapshot *dataset.Table) error {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := snapshot.WriteCSV(zw); err != nil {
		return fmt.Errorf("failed to encode backup %s: %w", key, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress backup %s: %w", key, err)
	}

	return storage.Upload(ctx, client, bucket, key, buf.Bytes(), "application/gzip")
}
