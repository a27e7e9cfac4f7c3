package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_PutGetEvict(t *testing.T) {
	c := NewCache()

	assert.Nil(t, c.Get("p1"))

	idx := &ProjectIndex{ProjectID: "p1", Title: "One"}
	c.Put("p1", idx)
	require.NotNil(t, c.Get("p1"))
	assert.Same(t, idx, c.Get("p1"))

	c.Evict("p1")
	assert.Nil(t, c.Get("p1"))
}

func TestCache_PutReplaces(t *testing.T) {
	c := NewCache()
	c.Put("p1", &ProjectIndex{ProjectID: "p1", Title: "old"})
	c.Put("p1", &ProjectIndex{ProjectID: "p1", Title: "new"})

	assert.Equal(t, "new", c.Get("p1").Title)
	assert.Equal(t, 1, c.Stats().Size)
}

func TestCache_EvictMissingIsNoop(t *testing.T) {
	c := NewCache()
	c.Put("p1", &ProjectIndex{ProjectID: "p1"})

	c.Evict("absent")

	assert.Equal(t, 1, c.Stats().Size)
}

func TestCache_EvictAll(t *testing.T) {
	c := NewCache()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("p%d", i)
		c.Put(id, &ProjectIndex{ProjectID: id})
	}
	require.Equal(t, 5, c.Stats().Size)

	c.EvictAll()
	assert.Equal(t, 0, c.Stats().Size)
	assert.Empty(t, c.Stats().ProjectIDs)
}

func TestCache_StatsSorted(t *testing.T) {
	c := NewCache()
	c.Put("zeta", &ProjectIndex{ProjectID: "zeta"})
	c.Put("alpha", &ProjectIndex{ProjectID: "alpha"})
	c.Put("mid", &ProjectIndex{ProjectID: "mid"})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.Stats().ProjectIDs)
}

func TestCache_NoImplicitEviction(t *testing.T) {
	c := NewCache()
	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("p%d", i)
		c.Put(id, &ProjectIndex{ProjectID: id})
	}
	assert.Equal(t, 1000, c.Stats().Size)
}
