package notify

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type ChangeKind string

const (
	ChangeEntries ChangeKind = "entries"
	ChangeTypes   ChangeKind = "types"
)

// Change is emitted after the entry/type store was mutated. Consumers use it
// to re-run aggregation or drop cached reports; the aggregation itself stays
// pure and pull-based.
type Change struct {
	Kind ChangeKind `json:"kind"`
	At   time.Time  `json:"at"`
}

type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Change
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[int]chan Change),
	}
}

// Subscribe returns a channel of store changes and a cancel function which
// closes the channel. Slow consumers lose notifications instead of blocking
// the publisher.
func (n *Notifier) Subscribe(buffer int) (<-chan Change, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	ch := make(chan Change, buffer)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish is safe to call on a nil notifier (no-op), so that repos can be
// used without the reactive plumbing, e.g. in the backup CLI.
func (n *Notifier) Publish(kind ChangeKind) {
	if n == nil {
		return
	}

	change := Change{
		Kind: kind,
		At:   time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for id, sub := range n.subs {
		select {
		case sub <- change:
		default:
			log.Tracef("notifier: subscriber %d full, dropping %s change", id, kind)
		}
	}
}
