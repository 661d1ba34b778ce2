package aggregate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/daviidcruz/novahub/internal/model"
)

// Snapshot は1回のリフレッシュが生成した結果セットを表す。
type Snapshot struct {
	// Seq はリフレッシュごとに単調増加するシーケンス番号。
	Seq uint64 `json:"seq"`
	// RefreshedAt はリフレッシュ完了時刻。
	RefreshedAt time.Time `json:"refreshedAt"`
	// Tenders はマージ・ソート済みのレコード一覧。
	Tenders []model.Tender `json:"tenders"`
}

// TenderSource は集約パイプラインの実行インターフェース。
type TenderSource interface {
	FetchAllTenders(ctx context.Context, keywords []string) []model.Tender
}

// SnapshotService はリフレッシュの実行と最新スナップショットの保持を行う。
//
// 進行中のリフレッシュのキャンセルはサポートしない。各リフレッシュは
// 単調増加のシーケンス番号でタグ付けされ、より新しいリフレッシュの結果が
// 既に保存されている場合、遅れて完了した古いリフレッシュの結果は破棄される
// （表示境界でのlast-write-wins、許容されたレース）。
type SnapshotService struct {
	source TenderSource

	seq atomic.Uint64

	mu     sync.RWMutex
	latest Snapshot
}

// NewSnapshotService はSnapshotServiceの新しいインスタンスを生成する。
func NewSnapshotService(source TenderSource) *SnapshotService {
	return &SnapshotService{source: source}
}

// Refresh はパイプラインを1回実行し、結果のスナップショットを返す。
// より新しいリフレッシュが先に完了していた場合、保存はスキップされるが
// 戻り値としてはこの実行の結果を返す。
func (s *SnapshotService) Refresh(ctx context.Context, keywords []string) Snapshot {
	seq := s.seq.Add(1)

	tenders := s.source.FetchAllTenders(ctx, keywords)

	snap := Snapshot{
		Seq:         seq,
		RefreshedAt: time.Now().UTC(),
		Tenders:     tenders,
	}

	s.mu.Lock()
	if seq > s.latest.Seq {
		s.latest = snap
	}
	s.mu.Unlock()

	return snap
}

// Latest は保存されている最新のスナップショットを返す。
// 一度もリフレッシュされていない場合はゼロ値（Seq=0、Tendersはnil）を返す。
func (s *SnapshotService) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
