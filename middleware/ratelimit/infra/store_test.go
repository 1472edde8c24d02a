package infra

import (
	"testing"
	"time"

	"edge-gateway/middleware/ratelimit/domain"
)

func TestStore_GetSameKeyReturnsSameLimiter(t *testing.T) {
	s := NewStore(10, 1)

	l1 := s.Get(domain.Key("k"))
	l2 := s.Get(domain.Key("k"))
	if l1 != l2 {
		t.Fatalf("expected same limiter pointer for same key")
	}
}

func TestStore_DistinctKeysGetDistinctBuckets(t *testing.T) {
	s := NewStore(0.02, 1, WithShards(4))

	if !s.Get(domain.Key("a")).Allow() {
		t.Fatalf("expected first request of key a to pass")
	}
	// chave diferente, bucket diferente: ainda tem burst
	if !s.Get(domain.Key("b")).Allow() {
		t.Fatalf("expected first request of key b to pass")
	}
}

func TestStore_BurstExhaustionRejectsNextRequest(t *testing.T) {
	// a configuração de borda: 10 rps sustentado, rajada de 20
	s := NewStore(10, 20)

	lim := s.GetString("203.0.113.1")
	for i := 0; i < 20; i++ {
		if !lim.Allow() {
			t.Fatalf("expected request %d within burst to pass", i+1)
		}
	}
	// a 21ª dentro da mesma janela tem que ser rejeitada
	if lim.Allow() {
		t.Fatalf("expected 21st request within burst window to be rejected")
	}
}

func TestStore_CleanupRemovesIdleEntries(t *testing.T) {
	s := NewStore(10, 1, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))

	before := s.Get(domain.Key("k"))
	time.Sleep(4 * time.Millisecond)

	s.Cleanup()

	if got := s.Len(); got != 0 {
		t.Fatalf("expected empty store after cleanup, got %d keys", got)
	}
	after := s.Get(domain.Key("k"))
	if before == after {
		t.Fatalf("expected limiter to be recreated after cleanup")
	}
}

func TestStore_CleanupKeepsActiveEntries(t *testing.T) {
	s := NewStore(10, 1, WithIdleTTL(1*time.Hour), WithCleanupEvery(0))

	s.Get(domain.Key("viva"))
	s.Cleanup()

	if got := s.Len(); got != 1 {
		t.Fatalf("expected active key to survive cleanup, got %d keys", got)
	}
}
