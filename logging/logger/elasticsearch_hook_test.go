package logger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/example-api/logging/logger/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElasticSearchHookDocument(t *testing.T) {
	cfg := &config.Config{
		IndexName:     "example-test-log",
		Elasticsearch: &config.Elasticsearch{Addresses: []string{"http://127.0.0.1:9200"}},
	}
	hook, err := NewElasticSearchHook(cfg)
	require.NoError(t, err)
	defer hook.Close(context.Background())

	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	entry := &logrus.Entry{
		Time:    at,
		Level:   logrus.ErrorLevel,
		Message: "request failed",
		Data:    logrus.Fields{"error": errors.New("boom"), "level": "spoofed", "path": "/api/example"},
	}

	doc := hook.prepareLogDocument(entry)
	assert.Equal(t, "2024-03-09T10:00:00Z", doc["@timestamp"])
	assert.Equal(t, "error", doc["level"])
	assert.Equal(t, "request failed", doc["message"])
	assert.Equal(t, "boom", doc["error"])
	assert.Equal(t, "/api/example", doc["path"])
	assert.Equal(t, "example-test-log-2024.03.09", cfg.BuildIndexName(at))
	assert.Len(t, hook.Levels(), len(logrus.AllLevels))
}

func TestNewElasticSearchHookRequiresConfig(t *testing.T) {
	_, err := NewElasticSearchHook(&config.Config{})
	assert.Error(t, err)
}

func TestElasticSearchHookIndexesAsync(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
		docs  []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var doc map[string]any
		_ = json.Unmarshal(body, &doc)

		mu.Lock()
		paths = append(paths, r.URL.Path)
		docs = append(docs, doc)
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		IndexName:     "example-test-log",
		Elasticsearch: &config.Elasticsearch{Addresses: []string{srv.URL}},
	}
	hook, err := NewElasticSearchHook(cfg)
	require.NoError(t, err)

	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	require.NoError(t, hook.Fire(&logrus.Entry{Time: at, Level: logrus.InfoLevel, Message: "hello", Data: logrus.Fields{}}))
	require.NoError(t, hook.Close(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 1)
	assert.Equal(t, "/example-test-log-2024.03.09/_doc", paths[0])
	assert.Equal(t, "hello", docs[0]["message"])
}
