package model

import "time"

// Manifest summarizes a single seeding run. It is written next to the
// corpus directory so repeated runs can be compared.
type Manifest struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	SourceRoot  string    `yaml:"source_root"`
	TargetDir   string    `yaml:"target_dir"`
	Trials      int       `yaml:"trials"`
	InsertByte  byte      `yaml:"insert_byte"`
	Seeds       int       `yaml:"seeds"`
	Entries     int       `yaml:"entries"`
	Duplicates  int       `yaml:"duplicates"`
}
