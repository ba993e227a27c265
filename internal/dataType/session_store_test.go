package dataType

import (
	"sync"
	"testing"
	"time"
)

func TestSessionStoreMarkAndExpire(t *testing.T) {
	store := NewSessionStore(4, 10*time.Second)
	now := time.Unix(1700000000, 0)
	store.now = func() time.Time { return now }

	if store.WasBlocked("abc") {
		t.Fatalf("fresh session should not be marked")
	}

	store.Marker("abc").MarkBlocked()
	if !store.WasBlocked("abc") {
		t.Errorf("expected marker after MarkBlocked")
	}
	if store.WasBlocked("other") {
		t.Errorf("marker leaked to another session")
	}

	now = now.Add(10 * time.Second)
	if !store.WasBlocked("abc") {
		t.Errorf("marker should still be valid at the TTL boundary")
	}

	now = now.Add(time.Second)
	if store.WasBlocked("abc") {
		t.Errorf("marker should expire after TTL")
	}

	store.GC()
	if n := store.Len(); n != 0 {
		t.Errorf("GC left %d markers", n)
	}
}

func TestSessionStoreEmptyIDIgnored(t *testing.T) {
	store := NewSessionStore(1, time.Minute)
	store.MarkBlocked("")
	if store.WasBlocked("") || store.Len() != 0 {
		t.Errorf("empty session id must not be stored")
	}
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore(2, time.Minute)
	store.MarkBlocked("abc")
	store.Clear("abc")
	if store.WasBlocked("abc") {
		t.Errorf("marker should be gone after Clear")
	}
}

func TestSessionStoreConcurrency(t *testing.T) {
	store := NewSessionStore(8, time.Minute)
	var wg sync.WaitGroup
	count := 100

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < count; i++ {
			store.MarkBlocked("s1")
			store.GC()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < count; i++ {
			store.WasBlocked("s1")
		}
	}()
	wg.Wait()

	if !store.WasBlocked("s1") {
		t.Errorf("expected s1 to be marked")
	}
}

func TestStartSessionGCStops(t *testing.T) {
	store := NewSessionStore(1, time.Minute)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		StartSessionGC(store, 5*time.Millisecond, stop)
		close(done)
	}()
	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("StartSessionGC did not return after stop")
	}
}

func TestPolicyMergedAddresses(t *testing.T) {
	p := &PolicyConfig{AddressList: []string{"a", "b"}, StaticAddressWhitelist: []string{"c"}}
	got := p.MergedAddresses()
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestListModeString(t *testing.T) {
	if ListWhitelist.String() != "whitelist" || ListBlacklist.String() != "blacklist" || ListDisabled.String() != "disabled" {
		t.Errorf("unexpected ListMode names")
	}
	if ListMode(7).String() != "unknown" {
		t.Errorf("invalid mode should be unknown")
	}
}
