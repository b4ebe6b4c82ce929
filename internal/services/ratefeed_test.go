package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventafacil/ledger/internal/models"
)

// fakeFeedQueue протоколирует обращения опросчика к очереди заданий.
type fakeFeedQueue struct {
	enqueued  int
	scheduled int
	paused    time.Duration
}

func (f *fakeFeedQueue) Enqueue(_ Job) error {
	f.enqueued++
	return nil
}

func (f *fakeFeedQueue) ScheduleJob(_ Job, _ time.Duration) {
	f.scheduled++
}

func (f *fakeFeedQueue) PauseAndResume(delay time.Duration) {
	f.paused = delay
}

// fakeRateRecorder протоколирует записанные наблюдения.
type fakeRateRecorder struct {
	recorded []decimal.Decimal
}

func (f *fakeRateRecorder) RecordObservation(_ context.Context, candidate decimal.Decimal, _ time.Time) (models.RateRecordResult, error) {
	f.recorded = append(f.recorded, candidate)
	return models.RateRecordResult{Inserted: true, Rate: models.RateObservation{Value: candidate}}, nil
}

func TestRateFeedPoll(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rate":"169.98"}`))
	}))
	defer feed.Close()

	queue := &fakeFeedQueue{}
	recorder := &fakeRateRecorder{}
	service := NewRateFeedService(recorder, queue, feed.URL, time.Hour)

	require.NoError(t, service.StartPolling())
	assert.Equal(t, 1, queue.enqueued)

	service.poll(context.Background())

	require.Len(t, recorder.recorded, 1)
	assert.True(t, recorder.recorded[0].Equal(dec("169.98")))
	// Следующий опрос планируется всегда.
	assert.Equal(t, 1, queue.scheduled)
}

func TestRateFeedPollPausesOnRateLimit(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer feed.Close()

	queue := &fakeFeedQueue{}
	recorder := &fakeRateRecorder{}
	service := NewRateFeedService(recorder, queue, feed.URL, time.Hour)

	service.poll(context.Background())

	assert.Empty(t, recorder.recorded)
	assert.Equal(t, 60*time.Second, queue.paused)
	assert.Equal(t, 1, queue.scheduled)
}

func TestRateFeedPollSurvivesFeedErrors(t *testing.T) {
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer feed.Close()

	queue := &fakeFeedQueue{}
	recorder := &fakeRateRecorder{}
	service := NewRateFeedService(recorder, queue, feed.URL, time.Hour)

	service.poll(context.Background())

	assert.Empty(t, recorder.recorded)
	assert.Equal(t, 1, queue.scheduled)
}
