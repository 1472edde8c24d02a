package infra

import (
	"hash/fnv"
	"sync"
	"time"

	"edge-gateway/middleware/ratelimit/domain"

	"golang.org/x/time/rate"
)

// Store é a tabela de token buckets por chave de cliente.
//
// A tabela é dividida em shards (fnv-1a sobre a chave) para que chaves
// diferentes não disputem o mesmo mutex sob carga. Cada shard guarda o
// limiter e o último acesso; um janitor descarta chaves ociosas para
// manter a memória limitada.
type Store struct {
	shards []*storeShard

	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type storeShard struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
}

type storeEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type StoreOption func(*Store)

// WithShards define o número de shards (mínimo 1).
func WithShards(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.shards = make([]*storeShard, n)
		}
	}
}

// WithIdleTTL define por quanto tempo uma chave sem tráfego sobrevive.
func WithIdleTTL(d time.Duration) StoreOption {
	return func(s *Store) { s.idleTTL = d }
}

// WithCleanupEvery define o intervalo do janitor. Zero desabilita.
func WithCleanupEvery(d time.Duration) StoreOption {
	return func(s *Store) { s.cleanupEvery = d }
}

func NewStore(rps float64, burst int, opts ...StoreOption) *Store {
	s := &Store{
		shards:       make([]*storeShard, 16),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range s.shards {
		s.shards[i] = &storeShard{entries: make(map[string]*storeEntry)}
	}
	return s
}

func (s *Store) RPS() float64                { return float64(s.rps) }
func (s *Store) Burst() int                  { return s.burst }
func (s *Store) CleanupEvery() time.Duration { return s.cleanupEvery }

func (s *Store) shardFor(key string) *storeShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// Get implementa domain.LimiterStore.
func (s *Store) Get(key domain.Key) domain.Limiter {
	return s.GetString(string(key))
}

// GetString devolve o bucket da chave, criando na primeira vez.
func (s *Store) GetString(key string) *rate.Limiter {
	now := time.Now()
	shard := s.shardFor(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if ent, ok := shard.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	shard.entries[key] = &storeEntry{lim: lim, lastSeen: now}
	return lim
}

// Cleanup descarta chaves sem tráfego há mais de idleTTL.
func (s *Store) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	for _, shard := range s.shards {
		shard.mu.Lock()
		for k, ent := range shard.entries {
			if ent.lastSeen.Before(cutoff) {
				delete(shard.entries, k)
			}
		}
		shard.mu.Unlock()
	}
}

// Len conta as chaves vivas (para testes e instrumentação).
func (s *Store) Len() int {
	total := 0
	for _, shard := range s.shards {
		shard.mu.Lock()
		total += len(shard.entries)
		shard.mu.Unlock()
	}
	return total
}

// StartJanitor dispara a goroutine de limpeza periódica.
// Pare cancelando o contexto.
func (s *Store) StartJanitor(ctx DoneContext) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// DoneContext é o mínimo de context.Context que o janitor precisa.
type DoneContext interface {
	Done() <-chan struct{}
}
