package aurora

// EventSink receives Module attribute-change notifications for a host's
// external listener systems (§4.3: "records a 'changed' event for
// external listeners"). A Module's OnAttrChanged is typically set to
// sink.Publish, so module.go never depends on a concrete event-bus
// implementation — the ecs package provides the default donburi-backed one.
type EventSink interface {
	Publish(AttrChangedEvent)
}
