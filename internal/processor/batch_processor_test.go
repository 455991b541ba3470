package processor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartestate/server/config"
	"smartestate/server/internal/models"
	"smartestate/server/internal/queue"
)

type stubStore struct {
	mu        sync.Mutex
	saved     []models.IndicatorSeries
	failTimes int
}

func (s *stubStore) SaveIndicators(series models.IndicatorSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTimes > 0 {
		s.failTimes--
		return errors.New("database locked")
	}
	s.saved = append(s.saved, series)
	return nil
}

func (s *stubStore) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func testConfig(retries int) *config.Config {
	cfg := &config.Config{}
	cfg.IndicatorRefresh.ProcessorCount = 1
	cfg.IndicatorRefresh.MaxRetries = retries
	cfg.IndicatorRefresh.RetryDelay = 0
	return cfg
}

func testBatch() models.IndicatorSeries {
	return models.IndicatorSeries{
		{IndicatorType: models.IndicatorInterestRate, Value: 4.25, Country: "United States"},
	}
}

func TestProcessBatch_Success(t *testing.T) {
	store := &stubStore{}
	p := NewBatchProcessor(store, nil, testConfig(3), nil)

	err := p.ProcessBatch(testBatch())
	require.NoError(t, err)
	assert.Equal(t, 1, store.savedCount())
}

func TestProcessBatch_RetriesUntilSuccess(t *testing.T) {
	store := &stubStore{failTimes: 2}
	p := NewBatchProcessor(store, nil, testConfig(3), nil)

	err := p.ProcessBatch(testBatch())
	require.NoError(t, err)
	assert.Equal(t, 1, store.savedCount())
}

func TestProcessBatch_ExhaustsRetries(t *testing.T) {
	store := &stubStore{failTimes: 10}
	p := NewBatchProcessor(store, nil, testConfig(2), nil)

	err := p.ProcessBatch(testBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Zero(t, store.savedCount())
}

func TestProcessor_DrainsQueue(t *testing.T) {
	store := &stubStore{}
	q := queue.NewIndicatorQueue(10, nil)

	p := NewBatchProcessor(store, q, testConfig(1), nil)
	p.Start()
	defer p.Stop()
	q.Start()
	defer q.Close()

	require.NoError(t, q.Push(testBatch()))
	require.NoError(t, q.Push(testBatch()))

	assert.Eventually(t, func() bool {
		return store.savedCount() == 2
	}, time.Second, 10*time.Millisecond)
}
