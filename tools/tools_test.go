package tools

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomNumbers(t *testing.T) {
	t.Run("tamanho e alfabeto", func(t *testing.T) {
		s := RandomNumbers(10)
		assert.Len(t, s, 10)
		for _, r := range s {
			assert.True(t, r >= '0' && r <= '9', "caractere inesperado: %q", r)
		}
	})

	t.Run("seguro sob concorrência", func(t *testing.T) {
		// as goroutines do worker geram nomes de sala em paralelo
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					if len(RandomNumbers(10)) != 10 {
						t.Error("tamanho inesperado")
						return
					}
				}
			}()
		}
		wg.Wait()
	})
}
