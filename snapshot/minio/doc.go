// Package minio provides a snapshot.Store for MinIO and other
// S3-compatible object storage reachable through the MinIO client.
package minio
