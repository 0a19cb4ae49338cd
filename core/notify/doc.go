// Package notify delivers the composed change report.
//
// # Drivers
//
//   - smtp: plain text e-mail through net/smtp, PLAIN auth when a username is set.
//   - storage: a text object under the report prefix of the bucket.
//   - log: an info entry on the application logger.
//   - none: no notifier; callers skip delivery.
//
// # Usage
//
//	n, err := notify.New(cfg.Notify, client, cfg.Storage.Bucket, logger)
//	err = n.Send(ctx, notify.Subject(time.Now()), report)
package notify
