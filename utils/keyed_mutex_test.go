package utils

import (
	"testing"
	"time"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock("neon")
	acquired := make(chan struct{})
	go func() {
		u := km.Lock("neon")
		u()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired after unlock")
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock("neon")
	defer unlock()

	acquired := make(chan struct{})
	go func() {
		u := km.Lock("floro")
		u()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("different key blocked by unrelated lock")
	}
}
