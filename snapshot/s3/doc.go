// Package s3 provides a snapshot.Store backed by Amazon S3, plus a
// DynamoDB commit log for atomically advancing the latest-snapshot
// pointer of a board when several writers share one history.
package s3
