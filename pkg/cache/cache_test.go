package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CacheTestSuite struct {
	suite.Suite
}

func (s *CacheTestSuite) TestSetAndGet() {
	c := New[string, string]()
	c.Set("key1", "value1")

	v, ok := c.Get("key1")
	assert.True(s.T(), ok)
	assert.Equal(s.T(), "value1", v)

	_, ok = c.Get("missing")
	assert.False(s.T(), ok)
}

func (s *CacheTestSuite) TestOverwriteIsNotAnError() {
	c := New[string, int]()
	c.Set("k", 1)
	c.Set("k", 2)

	v, ok := c.Get("k")
	assert.True(s.T(), ok)
	assert.Equal(s.T(), 2, v)
	assert.Equal(s.T(), 1, c.Len())
}

func (s *CacheTestSuite) TestTTLExpiry() {
	c := WithTTL[string, string](50 * time.Millisecond)
	c.Set("key1", "value1")

	assert.True(s.T(), c.Contains("key1"))

	time.Sleep(80 * time.Millisecond)

	assert.False(s.T(), c.Contains("key1"))
	_, ok := c.Get("key1")
	assert.False(s.T(), ok)
	// lazy expiry on Get removed the entry
	assert.Equal(s.T(), 0, c.Len())
}

func (s *CacheTestSuite) TestPerEntryTTLOverridesDefault() {
	c := WithTTL[string, string](time.Hour)
	c.SetTTL("short", "v", 50*time.Millisecond)
	c.Set("long", "v")

	time.Sleep(80 * time.Millisecond)

	assert.False(s.T(), c.Contains("short"))
	assert.True(s.T(), c.Contains("long"))
}

func (s *CacheTestSuite) TestSweepExpired() {
	c := WithTTL[string, string](50 * time.Millisecond)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.SetTTL("key3", "value3", time.Hour)

	time.Sleep(80 * time.Millisecond)

	assert.Equal(s.T(), 2, c.SweepExpired())
	assert.Equal(s.T(), 1, c.Len())
	assert.Equal(s.T(), 0, c.SweepExpired())
}

func (s *CacheTestSuite) TestLRUEviction() {
	c := WithMaxSize[string, string](3)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")

	// refresh key1 and key3 so key2 is the LRU victim
	c.Get("key1")
	c.Get("key3")

	c.Set("key4", "value4")

	assert.Equal(s.T(), 3, c.Len())
	assert.False(s.T(), c.Contains("key2"))
	assert.True(s.T(), c.Contains("key1"))
	assert.True(s.T(), c.Contains("key4"))
}

func (s *CacheTestSuite) TestOverwriteAtCapacityDoesNotEvict() {
	c := WithMaxSize[string, string](2)
	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key1", "updated")

	assert.Equal(s.T(), 2, c.Len())
	assert.True(s.T(), c.Contains("key2"))
}

func (s *CacheTestSuite) TestRemoveAndClear() {
	c := New[string, string]()
	c.Set("key1", "value1")
	c.Set("key2", "value2")

	v, ok := c.Remove("key1")
	assert.True(s.T(), ok)
	assert.Equal(s.T(), "value1", v)

	_, ok = c.Remove("key1")
	assert.False(s.T(), ok)

	c.Clear()
	assert.Equal(s.T(), 0, c.Len())
}

func (s *CacheTestSuite) TestContainsDoesNotTouch() {
	c := New[string, string]()
	c.Set("key1", "value1")

	c.Contains("key1")
	c.Contains("key1")

	assert.Equal(s.T(), 0, c.Stats().TotalAccesses)

	c.Get("key1")
	assert.Equal(s.T(), 1, c.Stats().TotalAccesses)
}

func (s *CacheTestSuite) TestStats() {
	c := New[string, string]()
	c.Set("key1", "value1")
	c.Set("key2", "value2")

	c.Get("key1")
	c.Get("key1")
	c.Get("key2")

	stats := c.Stats()
	assert.Equal(s.T(), 2, stats.Total)
	assert.Equal(s.T(), 2, stats.Active)
	assert.Equal(s.T(), 0, stats.Expired)
	assert.Equal(s.T(), 3, stats.TotalAccesses)
	assert.InDelta(s.T(), 1.5, stats.AvgAccesses, 0.001)
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}
