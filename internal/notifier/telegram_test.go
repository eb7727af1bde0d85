package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceOutlook/internal/logger"
)

type fakeTelegram struct {
	mu       sync.Mutex
	sent     []map[string]string
	failures int
	updates  string
}

func (f *fakeTelegram) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if f.failures > 0 {
				f.failures--
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"ok":false}`))
				return
			}
			var payload map[string]string
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.sent = append(f.sent, payload)
			w.Write([]byte(`{"ok":true}`))
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			w.Write([]byte(f.updates))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestNotifier(t *testing.T, fake *fakeTelegram) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	n := NewTelegramNotifier("TOKEN", "42", "", logger.WithComponent(logger.Discard(), "notifier"))
	n.APIBase = srv.URL
	n.RetryBase = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)

	require.NoError(t, n.Send(context.Background(), "<b>hi</b>"))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "42", fake.sent[0]["chat_id"])
	assert.Equal(t, "HTML", fake.sent[0]["parse_mode"])
	assert.Equal(t, "<b>hi</b>", fake.sent[0]["text"])
}

func TestSendWithRetry(t *testing.T) {
	fake := &fakeTelegram{failures: 2}
	n := newTestNotifier(t, fake)
	require.NoError(t, n.SendWithRetry(context.Background(), "hello", 3))
	assert.Len(t, fake.sent, 1)

	fake = &fakeTelegram{failures: 10}
	n = newTestNotifier(t, fake)
	err := n.SendWithRetry(context.Background(), "hello", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 retries exhausted")
	assert.Contains(t, err.Error(), "status 429")
}

func TestPollOnce(t *testing.T) {
	fake := &fakeTelegram{updates: `{"ok":true,"result":[
		{"update_id":7,"message":{"text":" /help ","chat":{"id":42}}},
		{"update_id":8,"message":{"text":"/forecast","chat":{"id":99}}},
		{"update_id":9}
	]}`}
	n := newTestNotifier(t, fake)

	var got []string
	next, err := n.pollOnce(context.Background(), 0, func(_ context.Context, cmd string) string {
		got = append(got, cmd)
		return "reply to " + cmd
	})
	require.NoError(t, err)
	assert.Equal(t, 10, next)
	assert.Equal(t, []string{"/help"}, got, "commands from other chats are ignored")
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "reply to /help", fake.sent[0]["text"])
}
