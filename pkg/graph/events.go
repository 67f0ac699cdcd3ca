package graph

import (
	"encoding/json"
	"slices"
)

// EventName identifies a change notification.
type EventName string

// Change notifications emitted by a [Graph].
const (
	EventNodeAdded                 EventName = "nodeAdded"
	EventEdgeAdded                 EventName = "edgeAdded"
	EventNodeDropped               EventName = "nodeDropped"
	EventEdgeDropped               EventName = "edgeDropped"
	EventCleared                   EventName = "cleared"
	EventEdgesCleared              EventName = "edgesCleared"
	EventAttributesUpdated         EventName = "attributesUpdated"
	EventNodeAttributesUpdated     EventName = "nodeAttributesUpdated"
	EventEdgeAttributesUpdated     EventName = "edgeAttributesUpdated"
	EventEachNodeAttributesUpdated EventName = "eachNodeAttributesUpdated"
	EventEachEdgeAttributesUpdated EventName = "eachEdgeAttributesUpdated"
)

// AllEvents lists every event a graph can emit.
func AllEvents() []EventName {
	return []EventName{
		EventNodeAdded, EventEdgeAdded, EventNodeDropped, EventEdgeDropped,
		EventCleared, EventEdgesCleared, EventAttributesUpdated,
		EventNodeAttributesUpdated, EventEdgeAttributesUpdated,
		EventEachNodeAttributesUpdated, EventEachEdgeAttributesUpdated,
	}
}

// UpdateType says how an attributes-updated event changed the map.
type UpdateType string

const (
	UpdateSet     UpdateType = "set"
	UpdateRemove  UpdateType = "remove"
	UpdateReplace UpdateType = "replace"
	UpdateMerge   UpdateType = "merge"
)

// Hints optionally narrow which attributes a bulk update touched.
type Hints struct {
	Attributes []string `json:"attributes,omitempty"`
}

// Event is the payload passed to listeners. Which fields are populated
// depends on Name:
//
//	nodeAdded, nodeDropped         Key, Attributes
//	edgeAdded, edgeDropped         Key, Source, Target, Undirected, Attributes
//	attributesUpdated              Type, Attributes, AttrName (set/remove), Data (merge)
//	nodeAttributesUpdated          Key + the fields of attributesUpdated
//	edgeAttributesUpdated          Key + the fields of attributesUpdated
//	each*AttributesUpdated         Hints
//	cleared, edgesCleared          nothing
//
// Attributes is the live map of the element, not a copy.
type Event struct {
	Name       EventName  `json:"event"`
	Key        string     `json:"key,omitempty"`
	Source     string     `json:"source,omitempty"`
	Target     string     `json:"target,omitempty"`
	Undirected bool       `json:"undirected,omitempty"`
	Attributes Attributes `json:"attributes,omitempty"`
	Type       UpdateType `json:"type,omitempty"`
	AttrName   string     `json:"name,omitempty"`
	Data       Attributes `json:"data,omitempty"`
	Hints      *Hints     `json:"hints,omitempty"`
}

// MarshalJSON writes key for node and edge events, and source and target
// for edge additions and drops, even when they are empty strings.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	switch e.Name {
	case EventNodeAdded, EventNodeDropped, EventNodeAttributesUpdated, EventEdgeAttributesUpdated:
		return json.Marshal(struct {
			Key string `json:"key"`
			plain
		}{e.Key, plain(e)})
	case EventEdgeAdded, EventEdgeDropped:
		return json.Marshal(struct {
			Key    string `json:"key"`
			Source string `json:"source"`
			Target string `json:"target"`
			plain
		}{e.Key, e.Source, e.Target, plain(e)})
	}
	return json.Marshal(plain(e))
}

// Listener receives events synchronously, on the goroutine that mutated
// the graph. Listeners may query and mutate the graph.
type Listener func(Event)

// ListenerID identifies a registration for [Graph.Off].
type ListenerID uint64

type registration struct {
	id   ListenerID
	fn   Listener
	once bool
}

type emitter struct {
	nextID    ListenerID
	listeners map[EventName][]registration
}

func (e *emitter) add(name EventName, fn Listener, once bool) ListenerID {
	if e.listeners == nil {
		e.listeners = make(map[EventName][]registration)
	}
	e.nextID++
	e.listeners[name] = append(e.listeners[name], registration{id: e.nextID, fn: fn, once: once})
	return e.nextID
}

func (e *emitter) remove(id ListenerID) bool {
	for name, regs := range e.listeners {
		if i := slices.IndexFunc(regs, func(r registration) bool { return r.id == id }); i >= 0 {
			e.listeners[name] = slices.Delete(slices.Clone(regs), i, i+1)
			return true
		}
	}
	return false
}

// emit dispatches ev to the listeners registered when emission started.
func (e *emitter) emit(ev Event) {
	regs := e.listeners[ev.Name]
	if len(regs) == 0 {
		return
	}
	for _, r := range slices.Clone(regs) {
		if r.once {
			e.remove(r.id)
		}
		r.fn(ev)
	}
}

// On registers fn for events named name and returns its registration id.
func (g *Graph) On(name EventName, fn Listener) ListenerID {
	return g.events.add(name, fn, false)
}

// Once registers fn for the next event named name only.
func (g *Graph) Once(name EventName, fn Listener) ListenerID {
	return g.events.add(name, fn, true)
}

// OnAll registers fn for every event and returns a function removing all
// of those registrations.
func (g *Graph) OnAll(fn Listener) (off func()) {
	ids := make([]ListenerID, 0, len(AllEvents()))
	for _, name := range AllEvents() {
		ids = append(ids, g.On(name, fn))
	}
	return func() {
		for _, id := range ids {
			g.Off(id)
		}
	}
}

// Off removes a registration. It reports whether one was found.
func (g *Graph) Off(id ListenerID) bool {
	return g.events.remove(id)
}

// RemoveAllListeners removes the listeners of the given events, or of
// every event when none are given.
func (g *Graph) RemoveAllListeners(names ...EventName) {
	if len(names) == 0 {
		g.events.listeners = nil
		return
	}
	for _, name := range names {
		delete(g.events.listeners, name)
	}
}

// ListenerCount returns the number of listeners registered for name.
func (g *Graph) ListenerCount(name EventName) int {
	return len(g.events.listeners[name])
}

func (g *Graph) emit(ev Event) { g.events.emit(ev) }
