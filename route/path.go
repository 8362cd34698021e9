package route

import (
	"strings"
	"sync"
)

// Path pattern syntax.
const (
	// ParamPrefix introduces a named single-segment parameter (":id").
	ParamPrefix = ":"

	// CatchAllPrefix introduces a named trailing catch-all ("*rest"),
	// only valid as the final segment of a pattern.
	CatchAllPrefix = "*"
)

// Params holds the parameter values captured during a path lookup, keyed by
// parameter name. A catch-all captures the remaining path joined with '/'.
type Params map[string]string

// Path is a segment-wise router for parameterized paths: O(segments) lookup,
// runtime-extensible. Resolution prefers a literal segment over a ':param'
// and a ':param' over a '*catchall' at every position, backtracking as
// needed. Path is safe for concurrent use.
type Path[T any] struct {
	mu   sync.RWMutex
	root *pathNode[T]
	size int
}

type pathNode[T any] struct {
	children map[string]*pathNode[T]
	param    *pathNode[T] // ':name' branch
	catch    *pathNode[T] // '*name' branch, always terminal
	name     string       // parameter or catch-all name at this node
	target   T
	terminal bool
	pattern  string
}

// NewPath creates an empty path router.
func NewPath[T any]() *Path[T] {
	return &Path[T]{root: &pathNode[T]{}}
}

// Add registers a target under pattern. Patterns are '/'-separated and may
// use ':name' for one segment and a final '*name' for the rest of the path.
// Two patterns that differ only in parameter names collide.
func (p *Path[T]) Add(pattern string, target T) error {
	segs, err := splitPattern(pattern)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	node := p.root
	for i, seg := range segs {
		switch {
		case strings.HasPrefix(seg, CatchAllPrefix):
			if i != len(segs)-1 || len(seg) == 1 {
				return ErrInvalidPattern
			}
			if node.catch == nil {
				node.catch = &pathNode[T]{name: seg[1:]}
			}
			node = node.catch
		case strings.HasPrefix(seg, ParamPrefix):
			if len(seg) == 1 {
				return ErrInvalidPattern
			}
			if node.param == nil {
				node.param = &pathNode[T]{name: seg[1:]}
			}
			node = node.param
		default:
			if node.children == nil {
				node.children = make(map[string]*pathNode[T])
			}
			child := node.children[seg]
			if child == nil {
				child = &pathNode[T]{}
				node.children[seg] = child
			}
			node = child
		}
	}

	if node.terminal {
		return ErrDuplicateKey
	}
	node.terminal = true
	node.target = target
	node.pattern = pattern
	p.size++
	return nil
}

// Remove deletes the route registered under pattern, pruning nodes that no
// longer lead to a route. It reports whether the pattern was registered.
func (p *Path[T]) Remove(pattern string) bool {
	segs, err := splitPattern(pattern)
	if err != nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	type pathEntry struct {
		node *pathNode[T]
		seg  string
	}
	path := make([]pathEntry, 0, len(segs))

	node := p.root
	for _, seg := range segs {
		path = append(path, pathEntry{node: node, seg: seg})
		switch {
		case strings.HasPrefix(seg, CatchAllPrefix):
			node = node.catch
		case strings.HasPrefix(seg, ParamPrefix):
			node = node.param
		default:
			node = node.children[seg]
		}
		if node == nil {
			return false
		}
	}
	if !node.terminal {
		return false
	}

	node.terminal = false
	var zero T
	node.target = zero
	node.pattern = ""
	p.size--

	for i := len(path) - 1; i >= 0; i-- {
		parent, seg := path[i].node, path[i].seg
		var child *pathNode[T]
		switch {
		case strings.HasPrefix(seg, CatchAllPrefix):
			child = parent.catch
		case strings.HasPrefix(seg, ParamPrefix):
			child = parent.param
		default:
			child = parent.children[seg]
		}
		if child.terminal || len(child.children) > 0 || child.param != nil || child.catch != nil {
			break
		}
		switch {
		case strings.HasPrefix(seg, CatchAllPrefix):
			parent.catch = nil
		case strings.HasPrefix(seg, ParamPrefix):
			parent.param = nil
		default:
			delete(parent.children, seg)
		}
	}
	return true
}

// Lookup resolves path against the registered patterns, capturing parameter
// and catch-all values. Params is nil when the matched pattern captures
// nothing.
func (p *Path[T]) Lookup(path string) (T, Params, bool) {
	segs := strings.Split(path, Separator)

	p.mu.RLock()
	defer p.mu.RUnlock()

	var params Params
	node := p.root.match(segs, &params)
	if node == nil {
		var zero T
		return zero, nil, false
	}
	return node.target, params, true
}

// Route implements Router; captured parameters are discarded.
func (p *Path[T]) Route(path string) (T, bool) {
	target, _, ok := p.Lookup(path)
	return target, ok
}

// Len reports the number of registered patterns.
func (p *Path[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.size
}

// Patterns returns every registered pattern in unspecified order.
func (p *Path[T]) Patterns() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	patterns := make([]string, 0, p.size)
	p.root.collect(&patterns)
	return patterns
}

func (n *pathNode[T]) match(segs []string, params *Params) *pathNode[T] {
	if len(segs) == 0 {
		if n.terminal {
			return n
		}
		return nil
	}

	head, tail := segs[0], segs[1:]
	if child := n.children[head]; child != nil {
		if m := child.match(tail, params); m != nil {
			return m
		}
	}
	if n.param != nil && head != "" {
		if m := n.param.match(tail, params); m != nil {
			if *params == nil {
				*params = make(Params)
			}
			(*params)[n.param.name] = head
			return m
		}
	}
	if n.catch != nil && n.catch.terminal {
		if *params == nil {
			*params = make(Params)
		}
		(*params)[n.catch.name] = strings.Join(segs, Separator)
		return n.catch
	}
	return nil
}

func (n *pathNode[T]) collect(out *[]string) {
	if n.terminal {
		*out = append(*out, n.pattern)
	}
	for _, child := range n.children {
		child.collect(out)
	}
	if n.param != nil {
		n.param.collect(out)
	}
	if n.catch != nil {
		n.catch.collect(out)
	}
}
