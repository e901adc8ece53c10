package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRememberAndRecall(t *testing.T) {
	s := NewStore(Options{TTL: time.Minute})

	_, ok := s.LastCar(1)
	assert.False(t, ok)

	s.Remember(1, "Tesla Model X")
	model, ok := s.LastCar(1)
	assert.True(t, ok)
	assert.Equal(t, "Tesla Model X", model)

	// Per-user isolation.
	_, ok = s.LastCar(2)
	assert.False(t, ok)

	s.Remember(1, "Honda Civic")
	model, _ = s.LastCar(1)
	assert.Equal(t, "Honda Civic", model)
}

func TestRememberIgnoresEmptyModel(t *testing.T) {
	s := NewStore(Options{TTL: time.Minute})

	s.Remember(1, "   ")

	_, ok := s.LastCar(1)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	s := NewStore(Options{TTL: time.Minute})

	s.Remember(1, "Audi A4")
	s.Clear(1)

	_, ok := s.LastCar(1)
	assert.False(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	s := NewStore(Options{TTL: 10 * time.Millisecond})

	s.Remember(1, "BMW M3")
	time.Sleep(30 * time.Millisecond)

	_, ok := s.LastCar(1)
	assert.False(t, ok)
}
