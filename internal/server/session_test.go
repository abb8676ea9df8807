package server

import (
	"fmt"
	"sync"

	"github.com/ayusman/handbreaker/internal/game"
)

// fakeSession records input and serves a settable snapshot.
type fakeSession struct {
	mu      sync.Mutex
	snap    game.Snapshot
	version uint64
	calls   []string
	err     error
}

func newFakeSession() *fakeSession {
	return &fakeSession{snap: game.Snapshot{State: game.StateIntro}, version: 1}
}

func (f *fakeSession) Snapshot() (game.Snapshot, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.version
}

func (f *fakeSession) setState(s game.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap.State = s
	f.version++
}

func (f *fakeSession) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSession) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeSession) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSession) Action(id string) error { return f.record("action:" + id) }

func (f *fakeSession) Key(key string) error { return f.record("key:" + key) }

func (f *fakeSession) Click(x, y float64) error {
	return f.record(fmt.Sprintf("click:%g,%g", x, y))
}
