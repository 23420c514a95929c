package storage

import (
	"errors"
	"fmt"
)

const (
	ResultDir   = "result"
	RegistryDir = "registry"
)

var (
	// DefaultDir is the root of all file based storage.
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a stored item of a run.
type Key struct {
	Run   string `json:"run"`
	Index int    `json:"index"`
	Label string `json:"label"`
}

// K is a simplified key for storage
type K struct {
	Run   string `json:"run"`
	Label string `json:"label"`
}

func (k Key) Path() string {
	return fmt.Sprintf("%s_%v_%s", k.Run, k.Index, k.Label)
}

// Registry is an append only log of events.
type Registry interface {
	Root() string
	Add(key K, value interface{}) error
	GetAll(key K, values interface{}) error
}

// Persistence stores and loads single items.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
