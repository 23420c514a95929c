package main

import (
	"testing"

	"github.com/drakos74/som-explain/internal/storage"
	"github.com/drakos74/som-explain/internal/storage/file/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	shard, registry := stores(true)
	store, err := shard("run")
	require.NoError(t, err)
	assert.IsType(t, &storage.VoidStorage{}, store)
	assert.IsType(t, &storage.VoidRegistry{}, registry)

	shard, registry = stores(false)
	store, err = shard("run")
	require.NoError(t, err)
	assert.IsType(t, &json.BlobStorage{}, store)
	assert.IsType(t, &json.Registry{}, registry)
}
