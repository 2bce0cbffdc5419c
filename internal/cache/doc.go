// Package cache provides a byte-bounded LRU cache for blob contents.
//
// It backs blobstore.CachingStore, which keeps recently loaded snapshots in
// memory so repeated loads from remote storage skip the network round trip.
package cache
