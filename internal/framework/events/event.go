package events

// EventBatch is a batch of events to be handled at once.
type EventBatch []interface{}

// ChangeEvent represents a change of an entry inside a watched directory.
type ChangeEvent struct {
	// Path is the path of the changed entry.
	Path string
	// Op is the operation that changed the entry, for example CREATE or REMOVE.
	Op string
}

// ResyncEvent requests a full rescan of a watched directory.
type ResyncEvent struct{}
