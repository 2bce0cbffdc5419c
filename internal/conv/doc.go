// Package conv provides checked integer conversions for the snapshot format.
//
// Header fields are fixed-width; slot counts and offsets are Go ints. Every
// conversion between the two goes through this package so that a corrupt or
// oversized value becomes an error instead of silent truncation.
package conv
