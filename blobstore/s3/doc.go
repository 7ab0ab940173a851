// Package s3 provides an AWS S3 implementation of blobstore.Store.
//
// Concept libraries are published as single objects under an optional key
// prefix:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("concepts/"))
//	reg := concept.NewRegistry(concept.WithStore(store, "library.bin"))
//
// Uploads go through the AWS upload manager so large libraries are split
// into concurrent multipart uploads automatically.
package s3
