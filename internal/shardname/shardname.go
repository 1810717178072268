// Package shardname implements the shard filename contract shared by the
// columnar and embedding-index writers.
//
// Filenames are deterministic functions of (prefix, index, total) so that a
// complete shard set can be rediscovered without a separate listing: knowing
// any one filename is enough to derive all of its siblings.
package shardname

import "fmt"

// Filename returns the name of shard shardIndex out of numShards.
//
// The format is "{prefix}-{shardIndex:05d}-of-{numShards:05d}.{ext}" and is a
// persisted-state contract: it must not change, or existing shard sets become
// undiscoverable.
func Filename(prefix string, shardIndex, numShards int, ext string) string {
	return fmt.Sprintf("%s-%05d-of-%05d.%s", prefix, shardIndex, numShards, ext)
}
