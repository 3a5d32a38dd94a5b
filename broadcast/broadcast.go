/*
Package broadcast publishes structural changes of a forest to subscribers.

A Broadcaster listens to the change events of a forest (or of a bare structural
index) and forwards every event to all of its subscribers, each on a channel of
its own. Events arrive in the order in which the mutations happened.

Listening happens synchronously within the mutating call; delivery to a
subscriber blocks as soon as its channel buffer is full. Subscribers therefore
have to drain their channels, or unsubscribe by cancelling the context they
subscribed with. Events for a cancelled subscription are discarded.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package broadcast

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/guiguan/caster"
	"github.com/npillmayer/nodetree/structure"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrClosed is returned when subscribing to a closed broadcaster.
var ErrClosed = errors.New("broadcast: broadcaster is closed")

// Publisher is a source of structural change events, such as a
// nodetree.Forest or a structure.Index.
type Publisher interface {
	OnChange(fn structure.Listener) (cancel func())
}

// Broadcaster forwards change events of a publisher to subscribers.
type Broadcaster struct {
	mx       sync.Mutex
	cast     *caster.Caster // fan-out of change events
	cancel   func()         // unregisters the change listener
	unlisten sync.Once
	closed   atomic.Bool
}

// New starts broadcasting the changes of src. The broadcaster is closed when ctx
// is done or Close is called. A nil ctx is treated as context.Background.
//
// A closed broadcaster unregisters from src with the next change src reports,
// from within the goroutine mutating src.
func New(ctx context.Context, src Publisher) *Broadcaster {
	if ctx == nil {
		ctx = context.Background()
	}
	b := &Broadcaster{cast: caster.New(ctx)}
	b.cancel = src.OnChange(b.publish)
	return b
}

// Done is closed as soon as the broadcaster is closed.
func (b *Broadcaster) Done() <-chan struct{} {
	return b.cast.Done()
}

func (b *Broadcaster) isClosed() bool {
	if b.closed.Load() {
		return true
	}
	select {
	case <-b.cast.Done():
		return true
	default:
		return false
	}
}

func (b *Broadcaster) publish(c structure.Change) {
	if b.isClosed() {
		b.unlisten.Do(b.cancel)
		tracer().Debugf("broadcast: closed, stop listening at %s of %s", c.Op, c.Ref)
		return
	}
	if !b.cast.Pub(c) {
		tracer().Debugf("broadcast: dropped %s of %s, caster closed", c.Op, c.Ref)
	}
}

// Subscribe returns a channel of change events. capacity is the channel's buffer
// size. The channel is closed when ctx is done or the broadcaster is closed.
func (b *Broadcaster) Subscribe(ctx context.Context, capacity uint) (<-chan structure.Change, error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	if b.isClosed() {
		return nil, ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	raw, ok := b.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	out := make(chan structure.Change, capacity)
	go func() {
		defer close(out)
		for msg := range raw {
			c, ok := msg.(structure.Change)
			if !ok {
				continue
			}
			select {
			case out <- c:
			case <-ctx.Done():
				b.drain(raw)
				return
			}
		}
	}()
	return out, nil
}

// drain consumes raw until the caster lets go of it, so that publishing never
// blocks on an abandoned subscription.
func (b *Broadcaster) drain(raw chan interface{}) {
	go b.cast.Unsub(raw)
	for range raw {
	}
}

// Close stops broadcasting and closes all subscriber channels.
// Calling Close more than once is harmless.
func (b *Broadcaster) Close() {
	b.mx.Lock()
	defer b.mx.Unlock()
	if b.closed.Swap(true) {
		return
	}
	b.cast.Close()
}
