package util

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringSet(t *testing.T) {
	set := NewStringSet("lo", "eth0")
	assert.True(t, set.Has("lo"))
	assert.False(t, set.AddIfAbsent("eth0"))
	assert.True(t, set.AddIfAbsent("wlan0"))
	assert.Equal(t, []string{"eth0", "lo", "wlan0"}, set.ToArray())

	set.Remove("lo")
	assert.Equal(t, 2, set.Size())
}

func TestGoroutineSafeBuffer(t *testing.T) {
	buf := NewGoroutineSafeBuffer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				fmt.Fprintf(buf, "w%d-%d\n", i, j)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, buf.Lines(), 800)
	assert.Equal(t, 800, buf.Writes())

	buf.Reset()
	assert.Nil(t, buf.Lines())
}
