package panichook

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstall_OnlyOnce(t *testing.T) {
	var (
		mu  sync.Mutex
		got []any
	)
	first := func(value any, _ []byte) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, value)
	}
	second := func(any, []byte) {
		t.Error("second sink must never be installed")
	}

	var wg sync.WaitGroup
	results := make(chan bool, 8)
	results <- Install(first)
	for range 7 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- Install(second)
		}()
	}
	wg.Wait()
	close(results)

	count := 0
	for did := range results {
		if did {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, Installed())

	before := Reports()
	Report("boom", []byte("stack"))
	assert.Equal(t, before+1, Reports())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []any{"boom"}, got)
}
