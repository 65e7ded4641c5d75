package client

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_SetGetClear(t *testing.T) {
	s := NewSessionStore()

	_, ok := s.Get()
	assert.False(t, ok, "empty store must report absent")

	s.Set("abc", "worker")
	sess, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, Session{Token: "abc", Role: "worker"}, sess)

	s.Set("def", "employer")
	sess, _ = s.Get()
	assert.Equal(t, "def", sess.Token, "set overwrites the previous session")

	s.Clear()
	sess, ok = s.Get()
	assert.False(t, ok)
	assert.Empty(t, sess.Token)
	assert.Empty(t, sess.Role)
}

func TestSessionStore_ConcurrentReaders(t *testing.T) {
	s := NewSessionStore()
	s.Set("abc", "worker")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, ok := s.Get()
			assert.True(t, ok)
			assert.Equal(t, "abc", sess.Token)
		}()
	}
	wg.Wait()
}
