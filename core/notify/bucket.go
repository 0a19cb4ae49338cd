package notify

import (
	"context"
	"path"
	"time"

	"change-detector/core/storage"
)

// Bucket stores reports as text objects in the bucket.
type Bucket struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewBucket creates a notifier writing under the given prefix.
func NewBucket(client storage.Client, bucket, prefix string) *Bucket {
	return &Bucket{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Send writes the subject and report to reports/report_{timestamp}.txt.
func (b *Bucket) Send(ctx context.Context, subject, body string) error {
	key := path.Join(b.prefix, "report_"+b.now().Format("2006-01-02_15-04-05")+".txt")
	return storage.Upload(ctx, b.client, b.bucket, key, []byte(subject+"\n"+body), "text/plain; charset=utf-8")
}
