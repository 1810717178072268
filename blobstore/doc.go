// Package blobstore abstracts where shard files live.
//
// Shards are immutable: a blob is written exactly once with Put and read back
// whole. The interface is deliberately small so that local disk, in-memory
// (tests), and object-store backends are interchangeable:
//
//   - LocalStore: local file system, atomic rename on Put
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO / S3-compatible stores
package blobstore
