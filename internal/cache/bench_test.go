package cache

import (
	"testing"
)

func BenchmarkLRUGet(b *testing.B) {
	c := New[int, int](1000)
	for i := 0; i < 100; i++ {
		c.Put(i, i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(50)
	}
}

func BenchmarkLRUPut(b *testing.B) {
	c := New[int, int](1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i%100, i)
	}
}

func BenchmarkLRUGetOrCreate(b *testing.B) {
	c := New[int, int](1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = c.GetOrCreate(i%100, func() (int, error) {
			return i, nil
		})
	}
}

func BenchmarkLRUEvictionChurn(b *testing.B) {
	c := New[int, int](64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i, i)
	}
}
