// Package relay は上流フィードをそのまま中継する内部リレーエンドポイントの
// ドメインロジックを提供する。
package relay

import (
	"sync"
	"time"
)

// cacheEntry はキャッシュ済みのフィードXMLと保存時刻を保持する。
type cacheEntry struct {
	body     []byte
	storedAt time.Time
}

// Cache はフィードXMLの明示的なTTLキャッシュ。
// プロセス全体の隠れた静的状態ではなく、呼び出し側が生成して所有する
// オブジェクトとして実装する（テストから制御・検査できるようにするため）。
// キーはフィードセレクタであり、エントリ数は供給元の数で自然に有界となる。
type Cache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	// now はテストで時刻を差し替えるためのフック。
	now func() time.Time
}

// NewCache は指定TTLのCacheを生成する。
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get はキャッシュエントリを返す。
// fresh はTTL内であること、found はエントリが存在することを表す。
// 期限切れエントリも返す（stale-while-revalidate のため）。
func (c *Cache) Get(key string) (body []byte, fresh, found bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, false
	}
	return entry.body, c.now().Sub(entry.storedAt) < c.ttl, true
}

// Put はフィードXMLをキャッシュに保存する。
func (c *Cache) Put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, storedAt: c.now()}
}
