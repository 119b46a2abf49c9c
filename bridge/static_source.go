package bridge

import "context"

// StaticSource is a TreeSource fed by pushing snapshots onto a
// channel; it backs the test suite and the bridge cmd/hintmgrd starts,
// in place of a live window manager connection.
type StaticSource struct {
	updates chan []WindowSnapshot
	changed chan struct{}
}

// NewStaticSource returns a StaticSource with no windows.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		updates: make(chan []WindowSnapshot, 1),
		changed: make(chan struct{}, 1),
	}
}

// Push installs a new snapshot and wakes up any waiting Reconciler.
func (s *StaticSource) Push(windows []WindowSnapshot) {
	select {
	case <-s.updates:
	default:
	}
	s.updates <- windows

	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func (s *StaticSource) Tree(ctx context.Context) ([]WindowSnapshot, error) {
	select {
	case w := <-s.updates:
		s.updates <- w
		return w, nil
	default:
		return nil, nil
	}
}

func (s *StaticSource) Quiescent(ctx context.Context) (<-chan struct{}, error) {
	return s.changed, nil
}
