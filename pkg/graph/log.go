package graph

import (
	"github.com/charmbracelet/log"
)

// LogEvents logs every change event of g at debug level and returns a
// function that stops logging.
func LogEvents(g *Graph, logger *log.Logger) (detach func()) {
	return g.OnAll(func(ev Event) {
		kv := []any{"event", string(ev.Name)}
		if ev.Key != "" {
			kv = append(kv, "key", ev.Key)
		}
		if ev.Source != "" || ev.Target != "" {
			kv = append(kv, "source", ev.Source, "target", ev.Target, "undirected", ev.Undirected)
		}
		if ev.Type != "" {
			kv = append(kv, "type", string(ev.Type))
		}
		if ev.AttrName != "" {
			kv = append(kv, "name", ev.AttrName)
		}
		if ev.Hints != nil && len(ev.Hints.Attributes) > 0 {
			kv = append(kv, "hints", ev.Hints.Attributes)
		}
		logger.Debug("graph changed", kv...)
	})
}
