// Package model defines the data structures for corpus seeding.
package model

// Path represents a file system path.
type Path string

// Seed represents a source file used as a mutation base. Seeds are
// read-only; the seeder never modifies them in place.
type Seed struct {
	Path Path
	Size int64
}

// Entry is a mutated sample persisted to the corpus directory, named by
// the lowercase hex SHA-256 digest of its content. Byte-identical samples
// collide to the same entry.
type Entry struct {
	Address string
	Path    Path
	Length  int
}
