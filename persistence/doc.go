// Package persistence implements the binary blob format for concept sets.
//
// A concept blob is a single self-describing byte sequence:
//
//	Header:  magic "AIGC", format version, compression tag, codec name, record count
//	Body:    length-prefixed records (name, metadata, dimension, raw float32 vector, strength),
//	         optionally LZ4 or ZSTD compressed as one block
//	Trailer: CRC32 (IEEE) of the stored body bytes
//
// The format is deterministic and round-trips vectors exactly. Metadata is
// encoded with a pluggable codec whose name is recorded in the header, so
// blobs written with one codec are decoded with the same one on load.
//
// CRC32 is used for corruption detection only; it is not cryptographically
// secure and must not be relied on for tamper detection.
package persistence
