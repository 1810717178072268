// Package embedindex persists sharded (leaf key, vector) pairs.
//
// A shard holds two aligned arrays: the leaf keys and a 2-D float32 matrix
// whose row order matches the key order. Shards are written whole and read
// whole; there is no partial or streaming access. The on-disk encoding is a
// small little-endian binary format with a zstd-compressed body.
//
// A key must appear in at most one shard of a set; the shard filename scheme
// ({prefix}-{i:05d}-of-{n:05d}.vidx) is the only coordination between the
// independent writers of one set.
package embedindex
