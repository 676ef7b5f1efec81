package limit

import (
	"strings"
	"sync"
	"time"
)

// Record 单地址窗口内的计数
type Record struct {
	Count   int
	ResetAt time.Time
}

// Store 计数存储。默认用进程内map，换成共享外部存储时
// 领取逻辑不需要改动。
type Store interface {
	Get(address string) (*Record, bool)
	Set(address string, rec *Record)
}

type memStore struct {
	records map[string]*Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*Record)}
}

func (s *memStore) Get(address string) (*Record, bool) {
	rec, ok := s.records[address]
	return rec, ok
}

func (s *memStore) Set(address string, rec *Record) {
	s.records[address] = rec
}

// ClaimLimiter 按地址限制领取参数请求频率。
// 固定窗口：窗口内最多maxAttempts次，窗口过期后首次请求重置计数。
// 状态只在本进程内存里，重启即清零——这只是软性的防滥用手段，
// 不是安全控制，双重领取由链上所有权检查兜底。
type ClaimLimiter struct {
	mu          sync.Mutex
	store       Store
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func NewClaimLimiter(maxAttempts int, window time.Duration) *ClaimLimiter {
	return NewClaimLimiterWithStore(newMemStore(), maxAttempts, window)
}

func NewClaimLimiterWithStore(store Store, maxAttempts int, window time.Duration) *ClaimLimiter {
	return &ClaimLimiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Admit 检查并计数，对同一地址的并发调用在锁内完成check-then-increment
func (l *ClaimLimiter) Admit(address string) bool {
	address = strings.ToLower(address)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.store.Get(address)
	if !ok || now.After(rec.ResetAt) {
		l.store.Set(address, &Record{Count: 1, ResetAt: now.Add(l.window)})
		return true
	}

	if rec.Count >= l.maxAttempts {
		return false
	}

	rec.Count++
	l.store.Set(address, rec)
	return true
}
