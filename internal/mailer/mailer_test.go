package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/utils"
)

type recordingSender struct {
	mu       sync.Mutex
	failures int // fail this many sends before succeeding
	sent     []string
}

func (r *recordingSender) Send(to []string, subject, htmlBody string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures > 0 {
		r.failures--
		return errors.New("smtp unavailable")
	}
	r.sent = append(r.sent, subject)
	return nil
}

func (r *recordingSender) sentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *recordingSender) subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestQueueDeliversJob(t *testing.T) {
	sender := &recordingSender{}
	q := NewQueue(&config.Config{}, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue(Job{To: []string{"a@example.com"}, Subject: "hello", HTMLBody: "<p>hi</p>"})

	waitFor(t, func() bool { return q.Delivered() == 1 })
	assert.Equal(t, []string{"hello"}, sender.subjects())
}

func TestQueueRetriesBeforeSuccess(t *testing.T) {
	old := retryBackoff
	retryBackoff = time.Millisecond
	defer func() { retryBackoff = old }()

	sender := &recordingSender{failures: 2}
	q := NewQueue(&config.Config{}, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue(Job{To: []string{"a@example.com"}, Subject: "retry me"})

	waitFor(t, func() bool { return q.Delivered() == 1 })
	assert.Equal(t, 1, sender.sentCount())
	assert.Equal(t, int64(0), q.Failed())
}

func TestQueueGivesUpAfterMaxAttempts(t *testing.T) {
	old := retryBackoff
	retryBackoff = time.Millisecond
	defer func() { retryBackoff = old }()

	sender := &recordingSender{failures: 99}
	q := NewQueue(&config.Config{}, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue(Job{To: []string{"a@example.com"}, Subject: "doomed"})

	waitFor(t, func() bool { return q.Failed() == 1 })
	assert.Equal(t, int64(0), q.Delivered())
}

func TestQueueDrainsKafkaFallback(t *testing.T) {
	// An unreachable broker forces Enqueue onto the in-process path; the
	// local consumer must pick the job up even in Kafka mode.
	cfg := &config.Config{KafkaBrokers: "127.0.0.1:1", KafkaTopic: "emails.test"}
	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()

	sender := &recordingSender{}
	q := NewQueue(cfg, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	q.Enqueue(Job{To: []string{"a@example.com"}, Subject: "fallback"})

	waitFor(t, func() bool { return q.Delivered() == 1 })
	assert.Equal(t, []string{"fallback"}, sender.subjects())
	assert.Equal(t, int64(0), q.Failed())
}

func TestContactNotificationEscapesInput(t *testing.T) {
	html, err := ContactNotification(`<script>x</script>`, "a@b.com", "Hi & bye", "msg")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Hi &amp; bye")
}

func TestWelcomeSubscriberIncludesUnsubscribeLink(t *testing.T) {
	html, err := WelcomeSubscriber("Ada", "https://example.com/unsub?token=abc")
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Ada,")
	assert.Contains(t, html, "https://example.com/unsub?token=abc")
}

func TestRegistrationConfirmationIncludesCode(t *testing.T) {
	html, err := RegistrationConfirmation("Ada", "Go Workshop", "Jan 2, 2026 10:00 UTC", "code-123")
	require.NoError(t, err)

	assert.Contains(t, html, "Go Workshop")
	assert.Contains(t, html, "code-123")
}
