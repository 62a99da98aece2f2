package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/bitgrid/snapshot"
)

// Store implements snapshot.Store for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO snapshot store.
// rootPrefix is prepended to all names (e.g. "boards/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.TrimSuffix(rootPrefix, "/"),
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Put uploads a snapshot.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

// Get downloads a snapshot.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, snapshot.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// List returns all snapshot names matching the prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	// Keep the root separator even for an empty prefix, so a store
	// rooted at "boards/" never matches "boards2/".
	root := s.prefix
	if root != "" {
		root += "/"
	}
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    root + prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if name := strings.TrimPrefix(obj.Key, root); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a snapshot. Deleting a missing snapshot is not an
// error.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.key(name), minio.RemoveObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil
		}
		return err
	}
	return nil
}
