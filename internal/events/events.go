// Package events provides event handling functionality
package events

import (
	"context"
	"sync"

	"github.com/celestiaorg/cadence/internal/logger"
)

// EventType represents the type of schedule event
type EventType string

const (
	// EventScheduleCreated is emitted when a schedule is created
	EventScheduleCreated EventType = "schedule_created"
	// EventScheduleUpdated is emitted when a schedule definition changes
	EventScheduleUpdated EventType = "schedule_updated"
	// EventScheduleToggled is emitted when a schedule is activated or deactivated
	EventScheduleToggled EventType = "schedule_toggled"
	// EventScheduleDeleted is emitted when a schedule is deleted
	EventScheduleDeleted EventType = "schedule_deleted"
	// EventChannelSize is the buffer size for the event channel
	EventChannelSize = 100
)

// ScheduleChanges lists every event that can change the set of active schedules
var ScheduleChanges = []EventType{
	EventScheduleCreated,
	EventScheduleUpdated,
	EventScheduleToggled,
	EventScheduleDeleted,
}

// Event represents a schedule event
type Event struct {
	Type       EventType // The type of event
	ScheduleID uint      // The schedule the event is about
	Name       string    // The schedule name
	IsActive   bool      // Whether the schedule is active after the change
}

// Handler is a function that handles an event
type Handler func(context.Context, Event) error

// Bus dispatches published events to the handlers subscribed to their type
type Bus struct {
	handlers   map[EventType][]Handler
	handlersMu sync.RWMutex
	eventChan  chan Event
}

// NewBus creates an event bus. Events are buffered until Start is called.
func NewBus() *Bus {
	return &Bus{
		handlers:  make(map[EventType][]Handler),
		eventChan: make(chan Event, EventChannelSize),
	}
}

// Subscribe registers a handler for one or more event types
func (b *Bus) Subscribe(handler Handler, eventTypes ...EventType) {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	for _, eventType := range eventTypes {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
		logger.Debugf("Registered handler for event type: %s", eventType)
	}
}

// Publish queues an event to be processed. It never blocks: when the buffer
// is full the event is dropped with a warning and Publish returns false.
func (b *Bus) Publish(event Event) bool {
	select {
	case b.eventChan <- event:
		logger.Debugf("Published event: %s (schedule: %d)", event.Type, event.ScheduleID)
		return true
	default:
		logger.Warnf("Event buffer full, dropping event %s for schedule %d", event.Type, event.ScheduleID)
		return false
	}
}

// Start starts the event processing loop
func (b *Bus) Start(ctx context.Context) {
	go b.processEvents(ctx)
	logger.Info("Started event processing loop")
}

// processEvents handles events in the background
func (b *Bus) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping event processing loop")
			return
		case event := <-b.eventChan:
			b.handlersMu.RLock()
			eventHandlers := b.handlers[event.Type]
			b.handlersMu.RUnlock()

			// Handlers run sequentially in subscription order
			for _, handler := range eventHandlers {
				if err := handler(ctx, event); err != nil {
					logger.Errorf("Failed to handle event %s for schedule %d: %v", event.Type, event.ScheduleID, err)
				}
			}
		}
	}
}
