package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetOrFetchCachesWithinTTL(t *testing.T) {
	c := New(time.Minute)

	fetches := 0
	fetch := func() (any, error) {
		fetches++
		return "value", nil
	}

	v, err := c.GetOrFetch("key", fetch)
	assert.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.GetOrFetch("key", fetch)
	assert.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, fetches)
}

func TestGetOrFetchRefreshesAfterExpiry(t *testing.T) {
	c := New(time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	fetches := 0
	fetch := func() (any, error) {
		fetches++
		return fetches, nil
	}

	v, _ := c.GetOrFetch("key", fetch)
	assert.Equal(t, 1, v)

	// Still fresh just inside the window.
	now = now.Add(59 * time.Second)
	v, _ = c.GetOrFetch("key", fetch)
	assert.Equal(t, 1, v)

	// Expired: the next read hits the source again.
	now = now.Add(2 * time.Second)
	v, _ = c.GetOrFetch("key", fetch)
	assert.Equal(t, 2, v)
}

func TestPerKeyTTLOverride(t *testing.T) {
	c := New(5 * time.Minute)
	c.SetTTL("fast", time.Second)

	now := time.Now()
	c.now = func() time.Time { return now }

	fastFetches, slowFetches := 0, 0
	c.GetOrFetch("fast", func() (any, error) { fastFetches++; return nil, nil })
	c.GetOrFetch("slow", func() (any, error) { slowFetches++; return nil, nil })

	now = now.Add(2 * time.Second)
	c.GetOrFetch("fast", func() (any, error) { fastFetches++; return nil, nil })
	c.GetOrFetch("slow", func() (any, error) { slowFetches++; return nil, nil })

	assert.Equal(t, 2, fastFetches)
	assert.Equal(t, 1, slowFetches)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := New(time.Minute)

	fetches := 0
	fetch := func() (any, error) {
		fetches++
		return fetches, nil
	}

	c.GetOrFetch("key", fetch)
	c.Invalidate("key")

	v, _ := c.GetOrFetch("key", fetch)
	assert.Equal(t, 2, v)
}

func TestClearDropsEverything(t *testing.T) {
	c := New(time.Minute)

	fetches := 0
	fetch := func() (any, error) {
		fetches++
		return nil, nil
	}

	c.GetOrFetch("a", fetch)
	c.GetOrFetch("b", fetch)
	c.Clear()
	c.GetOrFetch("a", fetch)
	c.GetOrFetch("b", fetch)

	assert.Equal(t, 4, fetches)
}

func TestFetchErrorIsNotCached(t *testing.T) {
	c := New(time.Minute)

	fetches := 0
	failing := errors.New("source down")
	fetch := func() (any, error) {
		fetches++
		if fetches == 1 {
			return nil, failing
		}
		return "recovered", nil
	}

	_, err := c.GetOrFetch("key", fetch)
	assert.ErrorIs(t, err, failing)

	v, err := c.GetOrFetch("key", fetch)
	assert.NoError(t, err)
	assert.Equal(t, "recovered", v)
}
