package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ui-spec-web/pkg/logger"
)

type memoryEntry struct {
	report     StoredReport
	lastActive time.Time
}

// MemoryStore 进程内存储，定期清理不活跃的会话
type MemoryStore struct {
	ttl      time.Duration
	sessions map[string]*memoryEntry
	mu       sync.RWMutex
	stop     chan struct{}
	once     sync.Once
}

// NewMemoryStore 创建内存存储并启动清理任务
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memoryEntry),
		stop:     make(chan struct{}),
	}
	go s.cleanupExpiredSessions()
	return s
}

func (s *MemoryStore) cleanupExpiredSessions() {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.purge(now)
		}
	}
}

// purge 删除 now 之前超过 ttl 未活跃的会话
func (s *MemoryStore) purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if now.Sub(entry.lastActive) > s.ttl {
			delete(s.sessions, id)
			removed++
			logger.Debug("清理过期会话报告", zap.String("session_id", id))
		}
	}
	return removed
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, report StoredReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = &memoryEntry{report: report, lastActive: time.Now()}
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, sessionID string) (*StoredReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	entry.lastActive = time.Now()
	report := entry.report
	return &report, nil
}

// Close 停止清理任务
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}
