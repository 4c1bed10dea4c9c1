// Package ecs adapts Aurora's Module attribute-change notifications onto a
// Donburi world, an optional bridge a host can wire in when it already runs
// its own ECS systems.
package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/novasky/aurora"
)

// AttrChangedEventType is the Donburi event type for module attribute
// changes. Subscribe to this in a host's ECS systems to react to §4.3's
// "changed" notifications without Module importing donburi directly.
var AttrChangedEventType = events.NewEventType[aurora.AttrChangedEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an aurora.EventSink backed by a Donburi world.
// Assign its Publish method to a Module's OnAttrChanged field (directly,
// or through a small closure) to route that module's attribute changes
// onto the world's event bus.
func NewDonburiSink(world donburi.World) aurora.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Publish(e aurora.AttrChangedEvent) {
	AttrChangedEventType.Publish(s.world, e)
}

// ProcessEvents drains queued attribute-change events to their
// subscribers. A host typically calls this once per frame, e.g. from a
// task registered via Core.AddTask.
func ProcessEvents(world donburi.World) {
	AttrChangedEventType.ProcessEvents(world)
}
