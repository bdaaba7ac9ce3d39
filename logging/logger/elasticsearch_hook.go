package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/ncobase/example-api/concurrency/worker"
	"github.com/ncobase/example-api/logging/logger/config"
	"github.com/sirupsen/logrus"
)

const esIndexTimeout = 5 * time.Second

// ElasticSearchHook ships log entries to an Elasticsearch index.
// Documents are indexed on a small worker pool; entries are dropped when
// its queue is full.
type ElasticSearchHook struct {
	client   *elasticsearch.Client
	config   *config.Config
	hostname string
	pool     *worker.Pool
}

// NewElasticSearchHook creates new Elasticsearch hook
func NewElasticSearchHook(cfg *config.Config) (*ElasticSearchHook, error) {
	if cfg == nil || cfg.Elasticsearch == nil {
		return nil, fmt.Errorf("elasticsearch config is nil")
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
	})
	if err != nil {
		return nil, err
	}

	pool, err := worker.NewPool(&worker.Config{
		MaxWorkers:  2,
		QueueSize:   1024,
		TaskTimeout: esIndexTimeout,
	}, worker.WithErrorHandler(func(err error) {
		fmt.Fprintf(os.Stderr, "elasticsearch log hook: %v\n", err)
	}))
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	return &ElasticSearchHook{client: client, config: cfg, hostname: hostname, pool: pool}, nil
}

// Levels returns all log levels
func (h *ElasticSearchHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire queues the entry for indexing
func (h *ElasticSearchHook) Fire(entry *logrus.Entry) error {
	body, err := json.Marshal(h.prepareLogDocument(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal log document: %w", err)
	}

	index := h.config.BuildIndexName(entry.Time)
	return h.pool.Submit(func(ctx context.Context) error {
		return h.index(ctx, index, body)
	})
}

// Close waits for queued entries to be indexed
func (h *ElasticSearchHook) Close(ctx context.Context) error {
	return h.pool.Stop(ctx)
}

func (h *ElasticSearchHook) index(ctx context.Context, index string, body []byte) error {
	res, err := h.client.Index(
		index,
		bytes.NewReader(body),
		h.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index error: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.Status())
	}
	return nil
}

// prepareLogDocument prepares the log document structure
func (h *ElasticSearchHook) prepareLogDocument(entry *logrus.Entry) map[string]any {
	doc := make(map[string]any, len(entry.Data)+4)

	// system fields win over entry data
	for key, value := range entry.Data {
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		doc[key] = value
	}

	doc["@timestamp"] = entry.Time.UTC().Format(time.RFC3339Nano)
	doc["level"] = entry.Level.String()
	doc["message"] = entry.Message
	if h.hostname != "" {
		doc["hostname"] = h.hostname
	}

	return doc
}
