package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericMap(t *testing.T) {
	m := NewGenericMap[int32, string]()
	_, ok := m.Load(1)
	assert.False(t, ok)

	m.Store(1, "a")
	m.Store(2, "b")
	v, ok := m.Load(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, m.Len())

	m.Delete(1)
	assert.Equal(t, 1, m.Len())

	m.Replace(map[int32]string{7: "x", 8: "y", 9: "z"})
	_, ok = m.Load(2)
	assert.False(t, ok, "replace drops old entries")
	assert.Equal(t, 3, m.Len())

	seen := map[int32]string{}
	m.Range(func(k int32, v string) bool {
		seen[k] = v
		return true
	})
	assert.Equal(t, map[int32]string{7: "x", 8: "y", 9: "z"}, seen)

	count := 0
	m.Range(func(int32, string) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count, "range stops when f returns false")

	m.Replace(nil)
	assert.Zero(t, m.Len())
}

func TestGenericMapReplaceIsAtomic(t *testing.T) {
	m := NewGenericMap[int, int]()
	full := map[int]int{}
	for i := 0; i < 64; i++ {
		full[i] = i
	}
	m.Replace(full)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				m.Replace(full)
			}
		}
	}()
	for i := 0; i < 200; i++ {
		assert.Equal(t, 64, m.Len())
	}
	close(stop)
	wg.Wait()
}
