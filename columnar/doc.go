// Package columnar converts streams of nested items into immutable, sharded
// parquet files.
//
// The writer is append-only and never reads back what it wrote. Row
// identifiers are synthesized for items that lack one, so that every derived
// artifact (embedding shards, signal output) can join back to its item.
// Distinct shards of one set may be written concurrently by independent
// workers: the deterministic filename scheme is the only coordination, and a
// (prefix, shardIndex, numShards) triple must never be reused for different
// content.
package columnar
