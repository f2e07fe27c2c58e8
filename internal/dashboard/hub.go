package dashboard

import (
	"context"

	channerics "github.com/niceyeti/channerics/channels"
)

// Hub owns one progress channel per sub-colony and fans them into a single
// merged update stream, the same shape as the teacher's root_view fan-in of
// per-view-component update channels.
type Hub struct {
	channels []chan Snapshot
	updates  <-chan Snapshot
}

// NewHub allocates one buffered publish channel per sub-colony and merges
// them via channerics.Merge. The merged reader is bound to ctx; the
// per-sub-colony channels themselves are never closed.
func NewHub(ctx context.Context, numSubColonies int) *Hub {
	raw := make([]chan Snapshot, numSubColonies)
	readers := make([]<-chan Snapshot, numSubColonies)
	for i := range raw {
		raw[i] = make(chan Snapshot, 8)
		readers[i] = raw[i]
	}
	return &Hub{
		channels: raw,
		updates:  channerics.Merge(ctx.Done(), readers...),
	}
}

// Publish delivers s on sub-colony id's channel. The send is non-blocking:
// a Snapshot is a complete idempotent picture of progress, so a slow
// consumer simply sees the next one rather than backing up the coordinator.
func (h *Hub) Publish(id int, s Snapshot) {
	if id < 0 || id >= len(h.channels) {
		return
	}
	select {
	case h.channels[id] <- s:
	default:
	}
}

// Updates returns the merged stream consumed by the websocket client.
func (h *Hub) Updates() <-chan Snapshot { return h.updates }
