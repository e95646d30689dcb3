package mailer

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/sandeshm/portfolio-backend/config"
	"github.com/sandeshm/portfolio-backend/utils"
)

// Job is one queued email. Jobs survive in Kafka when brokers are
// configured; otherwise they live in a bounded in-process channel.
type Job struct {
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	HTMLBody string   `json:"html_body"`
}

const (
	queueCapacity = 256
	maxAttempts   = 3
)

// retryBackoff is scaled per attempt; variable so tests can shorten it
var retryBackoff = time.Second

// Queue decouples email delivery from the request path. Enqueue never
// blocks the caller and never returns an error to it: a mail outage must
// not fail the triggering request.
type Queue struct {
	cfg    *config.Config
	sender Sender
	jobs   chan Job

	delivered atomic.Int64
	failed    atomic.Int64
}

func NewQueue(cfg *config.Config, sender Sender) *Queue {
	return &Queue{
		cfg:    cfg,
		sender: sender,
		jobs:   make(chan Job, queueCapacity),
	}
}

// Enqueue publishes a job to Kafka when enabled, else to the local channel.
// A full local queue drops the job with a log line rather than blocking.
func (q *Queue) Enqueue(job Job) {
	if utils.KafkaEnabled() {
		data, err := json.Marshal(job)
		if err != nil {
			log.Printf("❌ Email job marshal failed: %v", err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := utils.PublishMessage(ctx, job.Subject, data); err != nil {
			log.Printf("❌ Email job publish failed, delivering in-process: %v", err)
			q.enqueueLocal(job)
		}
		return
	}
	q.enqueueLocal(job)
}

func (q *Queue) enqueueLocal(job Job) {
	select {
	case q.jobs <- job:
	default:
		q.failed.Add(1)
		log.Printf("❌ Email queue full, dropping job %q", job.Subject)
	}
}

// Start launches the consumer goroutines. Call once from main. The local
// consumer always runs: with Kafka enabled it drains jobs that fell back
// to the channel on a failed publish.
func (q *Queue) Start(ctx context.Context) {
	go q.consumeLocal(ctx)
	if utils.KafkaEnabled() {
		go q.consumeKafka(ctx)
	}
}

func (q *Queue) consumeLocal(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			q.deliver(job)
		}
	}
}

func (q *Queue) consumeKafka(ctx context.Context) {
	reader := utils.NewQueueReader(q.cfg)
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("⚠️ Email queue read error: %v", err)
			time.Sleep(2 * time.Second)
			continue
		}

		var job Job
		if err := json.Unmarshal(msg.Value, &job); err != nil {
			log.Printf("❌ Email job decode failed: %v", err)
			continue
		}
		q.deliver(job)
	}
}

// deliver retries with linear backoff before giving up
func (q *Queue) deliver(job Job) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = q.sender.Send(job.To, job.Subject, job.HTMLBody); err == nil {
			q.delivered.Add(1)
			return
		}
		log.Printf("⚠️ Email send attempt %d/%d failed for %q: %v", attempt, maxAttempts, job.Subject, err)
		time.Sleep(time.Duration(attempt) * retryBackoff)
	}
	q.failed.Add(1)
	log.Printf("❌ Email permanently failed for %q: %v", job.Subject, err)
}

// Delivered returns the count of successfully sent jobs
func (q *Queue) Delivered() int64 { return q.delivered.Load() }

// Failed returns the count of dropped or permanently failed jobs
func (q *Queue) Failed() int64 { return q.failed.Load() }
