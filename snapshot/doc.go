// Package snapshot persists stable vectors to a blobstore.
//
// A snapshot is a self-describing binary envelope around the codec-encoded
// stablevec.State of a vector:
//
//	+-------+---------+-------------+-----------+-------+
//	| magic | version | compression | codec len | codec |
//	| SVSN  | u16     | u8          | u8        | name  |
//	+-------+---------+-------------+-----------+-------+
//	| raw len u64 | payload len u64 | payload | crc32c u32 |
//	+-------------+-----------------+---------+------------+
//
// All integers are little-endian. The checksum covers every preceding byte.
// A restored vector maps every index to the same element and reuses freed
// slots in the same order as the vector that was saved.
//
// # Generations
//
// Name builds lexicographically ordered blob names, so Latest finds the
// newest generation under a prefix and Prune deletes all but the newest few:
//
//	name := snapshot.Name("nodes", seq)
//	if err := snapshot.Save(ctx, store, name, vec); err != nil { ... }
//	_, err := snapshot.Prune(ctx, store, "nodes", 3)
package snapshot
