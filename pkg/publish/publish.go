// Package publish forwards graph change events to subscribers outside the
// process.
//
// [Attach] turns every event of a [graph.Graph] into a [Message] and hands
// it to a [Publisher]:
//
//	pub, err := publish.NewRedisPublisher(ctx, publish.RedisConfig{Addr: "localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer pub.Close()
//	detach := publish.Attach(ctx, g, "deps", pub, logger)
//	defer detach()
//
// Events are published synchronously from the listener, so a slow broker
// slows down mutations. Publish failures are logged and never abort the
// mutation that caused them.
package publish

import (
	"context"
	"maps"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphkit/pkg/graph"
)

// Message is the envelope sent for one change event.
type Message struct {
	ID    string      `json:"id"`
	Graph string      `json:"graph"`
	Time  time.Time   `json:"time"`
	Event graph.Event `json:"payload"`
}

// Publisher delivers messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// NewMessage wraps ev for the graph called name. Attribute maps are copied
// one level deep so later mutations do not leak into the message.
func NewMessage(name string, ev graph.Event) Message {
	ev.Attributes = maps.Clone(ev.Attributes)
	ev.Data = maps.Clone(ev.Data)
	return Message{
		ID:    uuid.NewString(),
		Graph: name,
		Time:  time.Now().UTC(),
		Event: ev,
	}
}

// Attach publishes every event of g to p until the returned function is
// called. A nil logger discards publish errors.
func Attach(ctx context.Context, g *graph.Graph, name string, p Publisher, logger *log.Logger) (detach func()) {
	return g.OnAll(func(ev graph.Event) {
		msg := NewMessage(name, ev)
		if err := p.Publish(ctx, msg); err != nil && logger != nil {
			logger.Warn("publish failed", "event", string(ev.Name), "id", msg.ID, "err", err)
		}
	})
}
