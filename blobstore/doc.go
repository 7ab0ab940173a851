// Package blobstore abstracts where serialized concept libraries live.
//
// A concept blob is small (a few KB to a few MB), written atomically and
// read back whole, so the Store interface is whole-blob oriented rather
// than streaming. Implementations:
//
//   - LocalStore: local filesystem with atomic temp+rename writes
//   - MemoryStore: in-memory, for tests
//   - CachingStore: read-through cache with singleflight fetch dedupe
//   - ThrottledStore: token-bucket op limiting for quota-constrained backends
//   - s3.Store: AWS S3 (subpackage s3)
//   - minio.Store: MinIO and other S3-compatible object stores (subpackage minio)
//
// Stores are safe for concurrent use. The registries built on top of them
// are not; see the concept package.
package blobstore
