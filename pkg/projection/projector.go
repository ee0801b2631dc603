package projection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/strataflow/strataflow/pkg/eventbus"
	"github.com/strataflow/strataflow/pkg/events"
)

// feedLimit caps the in-memory feed; older items are dropped.
const feedLimit = 200

// FeedItem is one rendered entry in the notification feed.
type FeedItem struct {
	ExecutionID string    `json:"execution_id"`
	BookingID   string    `json:"booking_id"`
	Record      Record    `json:"record"`
	Timestamp   time.Time `json:"timestamp"`
}

// Projector consumes execution events off the bus and maintains the
// in-memory notification feed served by the API.
type Projector struct {
	logger *slog.Logger

	mu    sync.RWMutex
	items []FeedItem
}

func NewProjector(logger *slog.Logger) *Projector {
	return &Projector{logger: logger}
}

// Register subscribes the projector's handlers on the bus. Call before
// the bus starts consuming.
func (p *Projector) Register(bus eventbus.EventSubscriber) error {
	if err := bus.Handle(events.NodeExecutedEvent, p.onNodeExecuted); err != nil {
		return err
	}

	return bus.Handle(events.ExecutionFailedEvent, p.onExecutionFailed)
}

func (p *Projector) onNodeExecuted(_ context.Context, event any) error {
	nodeExecuted, ok := event.(*events.NodeExecuted)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	p.append(FeedItem{
		ExecutionID: nodeExecuted.ExecutionID,
		BookingID:   nodeExecuted.BookingID,
		Record:      Render(nodeExecuted.Entry),
		Timestamp:   nodeExecuted.Entry.Timestamp,
	})

	return nil
}

func (p *Projector) onExecutionFailed(_ context.Context, event any) error {
	failed, ok := event.(*events.ExecutionFailed)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	p.append(FeedItem{
		ExecutionID: failed.ExecutionID,
		BookingID:   failed.BookingID,
		Record: Record{
			Category: CategoryWorkflow,
			Headline: "Workflow failed",
			Detail:   failed.Error,
		},
		Timestamp: failed.Timestamp,
	})

	return nil
}

func (p *Projector) append(item FeedItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.items = append(p.items, item)
	if len(p.items) > feedLimit {
		p.items = p.items[len(p.items)-feedLimit:]
	}
}

// Feed returns the feed items for one booking, oldest first.
func (p *Projector) Feed(bookingID string) []FeedItem {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var items []FeedItem

	for _, item := range p.items {
		if item.BookingID == bookingID {
			items = append(items, item)
		}
	}

	return items
}

// All returns every feed item, oldest first.
func (p *Projector) All() []FeedItem {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]FeedItem(nil), p.items...)
}
