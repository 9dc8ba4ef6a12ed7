package scene

import (
	"context"
	"sync"
)

// StaticSource is ready from the start.
type StaticSource struct {
	nodes []Node
}

// NewStaticSource wraps an already available node list.
func NewStaticSource(nodes []Node) *StaticSource {
	return &StaticSource{nodes: nodes}
}

// Poll always reports ready.
func (s *StaticSource) Poll() ([]Node, bool, error) {
	return s.nodes, true, nil
}

// FileSource loads a scene file in the background. Poll never blocks.
type FileSource struct {
	path string

	mu    sync.Mutex
	done  bool
	nodes []Node
	err   error
}

// NewFileSource starts loading path. Cancelling ctx before the load
// finishes makes Poll report ctx.Err().
func NewFileSource(ctx context.Context, path string) *FileSource {
	s := &FileSource{path: path}
	go s.load(ctx)
	return s
}

func (s *FileSource) load(ctx context.Context) {
	type result struct {
		nodes []Node
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		nodes, err := Load(s.path)
		ch <- result{nodes, err}
	}()

	var r result
	select {
	case r = <-ch:
	case <-ctx.Done():
		r.err = ctx.Err()
	}

	s.mu.Lock()
	s.done = true
	s.nodes, s.err = r.nodes, r.err
	s.mu.Unlock()
}

// Path returns the file being loaded.
func (s *FileSource) Path() string {
	return s.path
}

// Poll reports the nodes once loading has finished.
func (s *FileSource) Poll() ([]Node, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		return nil, false, nil
	}
	if s.err != nil {
		return nil, false, s.err
	}
	return s.nodes, true, nil
}
