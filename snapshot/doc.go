// Package snapshot persists board states to pluggable stores.
//
// A snapshot is a tiny self-describing record: the two board planes, a
// sequence number and optional labels. Stores range from an in-memory
// map used in tests to S3, MinIO and the local filesystem; a Catalog
// tracks which sequence numbers a store holds.
//
// # Built-in stores
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with atomic renames
//   - s3.Store: Amazon S3, with an optional DynamoDB commit pointer
//   - minio.Store: MinIO and other S3-compatible object stores
//
// Implementations must be safe for concurrent use.
package snapshot
