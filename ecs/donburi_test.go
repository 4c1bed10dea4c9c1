package ecs

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/novasky/aurora"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSinkPublishAndSubscribe(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []aurora.AttrChangedEvent
	AttrChangedEventType.Subscribe(world, func(w donburi.World, e aurora.AttrChangedEvent) {
		received = append(received, e)
	})

	sink.Publish(aurora.AttrChangedEvent{Name: "brightness", Value: 0.5})
	sink.Publish(aurora.AttrChangedEvent{Name: "fov", Value: 60.0})

	ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Name != "brightness" || received[1].Name != "fov" {
		t.Errorf("unexpected event order/contents: %+v", received)
	}
}

func TestDonburiSinkImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink aurora.EventSink = NewDonburiSink(world)
	_ = sink
}

func TestModuleOnAttrChangedRoutesToSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var got aurora.AttrChangedEvent
	AttrChangedEventType.Subscribe(world, func(w donburi.World, e aurora.AttrChangedEvent) {
		got = e
	})

	brightness := 0.0
	aurora.RegisterClass(&aurora.ClassDescriptor{
		ID: "ecs_test.brightness",
		Attrs: []aurora.AttrDescriptor{{
			Name: "brightness",
			Type: aurora.AttrFloat,
			Get:  func(*aurora.Module) any { return brightness },
			Set:  func(_ *aurora.Module, v any) { brightness = v.(float64) },
		}},
		Init: func(*aurora.Module) {},
	})
	m := aurora.NewModule("ecs_test.brightness", "sun")
	m.OnAttrChanged = sink.Publish

	if err := m.SetAttr("brightness", 0.75); err != nil {
		t.Fatalf("SetAttr: %v", err)
	}
	ProcessEvents(world)

	if got.Name != "brightness" || got.Value.(float64) != 0.75 {
		t.Errorf("event did not propagate through the sink: %+v", got)
	}
}
