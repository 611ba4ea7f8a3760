package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/events"
)

// Notifier consumes events off the request path.
type Notifier interface {
	EventTypes() []events.EventType
	Handle(ctx context.Context, event events.Event) error
}

// NotificationWorker queues dispatched events and hands them to a Notifier
// on its own goroutine, so publishing never waits on notifications.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event
	wg       sync.WaitGroup
}

// NewNotificationWorker creates a worker with a queue of the given size.
func NewNotificationWorker(notifier Notifier, logger *zap.Logger, size int) *NotificationWorker {
	if size <= 0 {
		size = 64
	}
	return &NotificationWorker{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan events.Event, size),
	}
}

// Subscribe registers the worker on dispatcher for every type the notifier handles.
func (w *NotificationWorker) Subscribe(dispatcher events.Dispatcher) {
	for _, eventType := range w.notifier.EventTypes() {
		dispatcher.Subscribe(eventType, w.enqueue)
	}
}

// enqueue drops the event when the queue is full.
func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full; dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
	}
	return nil
}

// Start consumes the queue until ctx is cancelled, then drains what is left.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event := <-w.queue:
				w.handle(ctx, event)
			case <-ctx.Done():
				w.drain()
				return
			}
		}
	}()
}

// Wait blocks until the consumer goroutine has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.handle(context.Background(), event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) handle(ctx context.Context, event events.Event) {
	if err := w.notifier.Handle(ctx, event); err != nil {
		w.logger.Warn("notification failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
