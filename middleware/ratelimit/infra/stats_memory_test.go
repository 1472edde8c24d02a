package infra

import (
	"context"
	"testing"

	"edge-gateway/middleware/ratelimit/domain"
)

func TestMemoryStatsStore_CountsByRoute(t *testing.T) {
	s := NewMemoryStatsStore(WithTrackKeys(true))

	_ = s.Record(context.Background(), domain.StatsEvent{Key: "1.2.3.4", Allowed: true, Route: "api"})
	_ = s.Record(context.Background(), domain.StatsEvent{Key: "1.2.3.4", Allowed: false, Route: "api"})
	_ = s.Record(context.Background(), domain.StatsEvent{Key: "5.6.7.8", Allowed: true, Route: "api"})

	total := s.Total()
	if total.Allowed != 2 || total.Denied != 1 {
		t.Fatalf("unexpected totals %+v", total)
	}

	byRoute := s.ByRoute()
	if c := byRoute["api"]; c.Allowed != 2 || c.Denied != 1 {
		t.Fatalf("unexpected route counters %+v", c)
	}

	byKey := s.ByKey()
	if c := byKey["1.2.3.4"]; c.Allowed != 1 || c.Denied != 1 {
		t.Fatalf("unexpected key counters %+v", c)
	}
}
