// Package minio provides a blobstore.Store backed by MinIO or any
// S3-compatible object store reachable through the MinIO SDK.
//
//	client, _ := minio.New("play.min.io", &minio.Options{...})
//	store := miniostore.NewStore(client, "concepts", "libraries/")
//
// Use this instead of the s3 package when targeting self-hosted object
// storage without AWS credentials infrastructure.
package minio
