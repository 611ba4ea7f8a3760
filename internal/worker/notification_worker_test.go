package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/events"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingNotifier) EventTypes() []events.EventType {
	return []events.EventType{events.EventCaseCreated}
}

func (r *recordingNotifier) Handle(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestWorkerDeliversSubscribedEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(notifier, zap.NewNop(), 8)
	w.Subscribe(dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventCaseCreated, SubjectID: "c1"}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventCaseAssigned, SubjectID: "c1"}))

	require.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()
	require.Equal(t, "c1", notifier.events[0].SubjectID)
}

func TestWorkerDrainsQueueOnShutdown(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(notifier, zap.NewNop(), 8)
	w.Subscribe(dispatcher)

	for i := 0; i < 3; i++ {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventCaseCreated}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
	w.Wait()

	require.Equal(t, 3, notifier.count())
}

func TestWorkerDropsWhenQueueFull(t *testing.T) {
	notifier := &recordingNotifier{}
	dispatcher := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(notifier, zap.NewNop(), 1)
	w.Subscribe(dispatcher)

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventCaseCreated}))
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventCaseCreated}))

	require.Len(t, w.queue, 1)
}
