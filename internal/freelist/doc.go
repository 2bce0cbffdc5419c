// Package freelist tracks the reusable slot offsets of a stable vector.
//
// Three disciplines share one interface:
//   - Stack: LIFO, O(1) push/pop, O(n) arbitrary removal
//   - Indexed: LIFO, O(1) push/pop/arbitrary removal (roaring64 presence bitmap)
//   - Lowest: lowest offset first (roaring64 bitmap)
//
// Free lists are not safe for concurrent use.
package freelist
