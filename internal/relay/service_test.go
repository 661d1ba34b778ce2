package relay

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daviidcruz/novahub/internal/feed"
	"github.com/daviidcruz/novahub/internal/model"
)

const atomBody = `<?xml version="1.0" encoding="UTF-8"?><feed xmlns="http://www.w3.org/2005/Atom"><title>Licitaciones</title></feed>`

// plainGuard はテスト用のSSRF検証なしのクライアント生成器。
// httptestサーバーは127.0.0.1で起動されるため、本物のガードではブロックされる。
type plainGuard struct{}

func (plainGuard) NewSafeClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func newTestService(upstream string, ttl time.Duration) (*Service, *Cache) {
	sources := []feed.Source{
		{Selector: "perfiles", URL: upstream, SourceType: "Perfiles Contratante"},
	}
	cache := NewCache(ttl)
	svc := NewService(sources, plainGuard{}, cache, discardLogger(), 5*time.Second, 1<<20)
	return svc, cache
}

func TestFeedXML_FetchesAndCaches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(atomBody))
	}))
	defer server.Close()

	svc, _ := newTestService(server.URL, time.Minute)

	body, err := svc.FeedXML(context.Background(), "perfiles")
	if err != nil {
		t.Fatalf("FeedXML がエラーを返した: %v", err)
	}
	if string(body) != atomBody {
		t.Errorf("body = %q", body)
	}

	// 2回目はキャッシュから返り、上流には到達しない
	if _, err := svc.FeedXML(context.Background(), "perfiles"); err != nil {
		t.Fatalf("2回目の FeedXML がエラーを返した: %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("上流リクエスト数 = %d, want 1", hits)
	}
}

func TestFeedXML_InvalidSelector_ReturnsClientError(t *testing.T) {
	svc, _ := newTestService("https://example.com/feed.atom", time.Minute)

	_, err := svc.FeedXML(context.Background(), "desconocido")
	if err == nil {
		t.Fatal("不正なセレクタでエラーが返らなかった")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("エラー型 = %T, want *model.APIError", err)
	}
	if apiErr.Status != 400 {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "Feed no válido" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Feed no válido")
	}
}

func TestFeedXML_UpstreamFailure_ReturnsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, _ := newTestService(server.URL, time.Minute)

	_, err := svc.FeedXML(context.Background(), "perfiles")
	if err == nil {
		t.Fatal("上流失敗でエラーが返らなかった")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("エラー型 = %T, want *model.APIError", err)
	}
	if apiErr.Status != 502 {
		t.Errorf("Status = %d, want 502", apiErr.Status)
	}
	if apiErr.Message != "No se pudo acceder al feed" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "No se pudo acceder al feed")
	}
}

// 上流がXMLでないボディを返した場合も取得失敗として扱うことを検証
func TestFeedXML_NonXMLUpstream_ReturnsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!DOCTYPE html><html>mantenimiento</html>"))
	}))
	defer server.Close()

	svc, _ := newTestService(server.URL, time.Minute)

	if _, err := svc.FeedXML(context.Background(), "perfiles"); err == nil {
		t.Fatal("XMLでないボディでエラーが返らなかった")
	}
}

// 期限切れエントリは古い内容を即座に返し、バックグラウンドで再検証することを検証
func TestFeedXML_StaleEntry_ServedWhileRevalidating(t *testing.T) {
	updated := `<?xml version="1.0"?><feed><title>actualizado</title></feed>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(updated))
	}))
	defer server.Close()

	svc, cache := newTestService(server.URL, time.Minute)

	// 期限切れのエントリを仕込む
	base := time.Now()
	cache.now = func() time.Time { return base.Add(-2 * time.Minute) }
	cache.Put("perfiles", []byte(atomBody))
	cache.now = time.Now

	body, err := svc.FeedXML(context.Background(), "perfiles")
	if err != nil {
		t.Fatalf("FeedXML がエラーを返した: %v", err)
	}
	// 古い内容が即座に返る
	if string(body) != atomBody {
		t.Errorf("body = %q, want 古いキャッシュ内容", body)
	}

	// バックグラウンド再検証の完了を待つ
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if got, _, _ := cache.Get("perfiles"); string(got) == updated {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("バックグラウンド再検証でキャッシュが更新されなかった")
}
