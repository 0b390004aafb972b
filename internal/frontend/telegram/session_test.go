package telegram

import (
	"sync"
	"testing"
)

func TestSessionManager_IsAllowed(t *testing.T) {
	t.Run("empty whitelist allows all", func(t *testing.T) {
		sm := newSessionManager(nil)
		if !sm.isAllowed(123) {
			t.Error("expected all users allowed with nil whitelist")
		}
		if !sm.isAllowed(456) {
			t.Error("expected all users allowed with nil whitelist")
		}
	})

	t.Run("empty slice allows all", func(t *testing.T) {
		sm := newSessionManager([]int64{})
		if !sm.isAllowed(123) {
			t.Error("expected all users allowed with empty whitelist")
		}
	})

	t.Run("whitelist restricts", func(t *testing.T) {
		sm := newSessionManager([]int64{100, 200})
		if !sm.isAllowed(100) {
			t.Error("expected user 100 allowed")
		}
		if !sm.isAllowed(200) {
			t.Error("expected user 200 allowed")
		}
		if sm.isAllowed(300) {
			t.Error("expected user 300 denied")
		}
	})
}

func TestSessionManager_LastMovie(t *testing.T) {
	sm := newSessionManager(nil)

	if got := sm.lastMovie(100); got != 0 {
		t.Errorf("expected 0 for unknown user, got %d", got)
	}

	sm.rememberMovie(100, 27205)
	sm.rememberMovie(200, 155)
	if got := sm.lastMovie(100); got != 27205 {
		t.Errorf("expected 27205, got %d", got)
	}

	sm.rememberMovie(100, 603)
	if got := sm.lastMovie(100); got != 603 {
		t.Errorf("expected overwrite to 603, got %d", got)
	}
	if got := sm.lastMovie(200); got != 155 {
		t.Errorf("expected user 200 unaffected, got %d", got)
	}
}

func TestSessionManager_Reset(t *testing.T) {
	sm := newSessionManager(nil)
	sm.rememberMovie(100, 27205)
	sm.reset(100)

	if got := sm.lastMovie(100); got != 0 {
		t.Errorf("expected cleared session, got %d", got)
	}
}

func TestSessionManager_Concurrent(t *testing.T) {
	sm := newSessionManager(nil)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := int64(i % 10)
			sm.rememberMovie(userID, i+1)
			if sm.lastMovie(userID) == 0 {
				t.Error("expected remembered movie")
			}
		}()
	}
	wg.Wait()
}
