package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          uuid.MustParse("0b7f5d3a-1c2e-4f6a-8b9c-7d1e2f3a4b5c"),
		ProjectID:   uuid.MustParse("6f1c7c1e-3b7a-4c7f-9d55-0d8c2c0a9b11"),
		Date:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   types.MustTimeString("10:00"),
		EndTime:     types.MustTimeString("10:30"),
		Status:      domain.StatusPending,
		ClientName:  "Анна",
		ClientEmail: "anna@example.com",
	}
}

func TestClient_Send(t *testing.T) {
	var received Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications/events", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())
	event := NewEvent(EventNewAppointment, testAppointment(), time.Now())

	require.NoError(t, client.Send(context.Background(), event))
	assert.Equal(t, EventNewAppointment, received.Type)
	assert.Equal(t, "2025-06-02", received.Date)
	assert.Equal(t, "10:00", received.StartTime)
	assert.Equal(t, "pending", received.Status)
}

func TestClient_Send_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, logger.NewNop())
	err := client.Send(context.Background(), NewEvent(EventCancelled, testAppointment(), time.Now()))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

type fakeSender struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (f *fakeSender) Send(_ context.Context, event Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

type fakeMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func (f *fakeMetrics) IncNotification(event, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.results == nil {
		f.results = make(map[string]int)
	}
	f.results[event+":"+result]++
}

func TestDispatcher_Dispatch(t *testing.T) {
	sender := &fakeSender{}
	m := &fakeMetrics{}
	d := NewDispatcher(sender, time.Second, m, logger.NewNop())

	d.Dispatch(NewEvent(EventConfirmed, testAppointment(), time.Now()))
	d.Wait()

	require.Len(t, sender.events, 1)
	assert.Equal(t, EventConfirmed, sender.events[0].Type)
	assert.Equal(t, 1, m.results["confirmed:sent"])
}

func TestDispatcher_FailureDoesNotPropagate(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	m := &fakeMetrics{}
	d := NewDispatcher(sender, time.Second, m, logger.NewNop())

	d.Dispatch(NewEvent(EventNewAppointment, testAppointment(), time.Now()))
	d.Wait()

	assert.Equal(t, 1, m.results["new_appointment:failed"])
}

func TestDispatcher_Disabled(t *testing.T) {
	m := &fakeMetrics{}
	d := NewDispatcher(nil, time.Second, m, logger.NewNop())

	d.Dispatch(NewEvent(EventCancelled, testAppointment(), time.Now()))
	d.Wait()

	assert.Equal(t, 1, m.results["cancelled:skipped"])
}
