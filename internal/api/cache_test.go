package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

func TestSolutionCache(t *testing.T) {
	c := newSolutionCache(time.Minute)
	defer c.Close()

	_, ok := c.get("missing")
	assert.False(t, ok)

	solution := &model.Solution{Type: model.Proportional, Answer: "42"}
	c.set("key", solution)

	got, ok := c.get("key")
	assert.True(t, ok)
	assert.Same(t, solution, got)
	assert.Equal(t, 1, c.size())
}

func TestSolutionCacheExpiry(t *testing.T) {
	c := newSolutionCache(time.Millisecond)
	defer c.Close()

	c.set("key", &model.Solution{})
	time.Sleep(5 * time.Millisecond)

	_, ok := c.get("key")
	assert.False(t, ok)

	c.evictExpired(time.Now())
	assert.Equal(t, 0, c.size())
}

func TestSolutionCacheClear(t *testing.T) {
	c := newSolutionCache(time.Minute)
	defer c.Close()

	c.set("a", &model.Solution{})
	c.set("b", &model.Solution{})
	c.clear()

	_, ok := c.get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.size())

	c.set("a", &model.Solution{})
	assert.Equal(t, 1, c.size())
}

func TestSolutionCacheCloseTwice(t *testing.T) {
	c := newSolutionCache(0)
	c.Close()
	c.Close()
}
