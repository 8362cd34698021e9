package route

import (
	"strings"
	"sync"
)

// Key syntax for the Trie backend.
const (
	// Separator divides a key into segments.
	Separator = "/"

	// WildcardOne matches exactly one segment.
	WildcardOne = "+"

	// WildcardRest matches zero or more trailing segments and is only
	// valid as the final segment of a pattern.
	WildcardRest = "#"
)

// Trie is a segment-wise prefix-tree router over '/'-separated keys:
// O(segments) lookup, runtime-extensible, with hierarchical wildcards.
// Resolution prefers a literal segment over '+' and '+' over '#' at every
// position, backtracking as needed, so the longest literal prefix wins.
// Trie is safe for concurrent use.
type Trie[T any] struct {
	mu   sync.RWMutex
	root *trieNode[T]
	size int
}

type trieNode[T any] struct {
	children map[string]*trieNode[T]
	one      *trieNode[T] // '+' branch
	rest     *trieNode[T] // '#' branch, always terminal
	target   T
	terminal bool
	pattern  string
}

// NewTrie creates an empty trie router.
func NewTrie[T any]() *Trie[T] {
	return &Trie[T]{root: &trieNode[T]{}}
}

// Add registers a target under pattern. Patterns are '/'-separated and may
// use '+' for one segment and a final '#' for the remaining segments.
func (t *Trie[T]) Add(pattern string, target T) error {
	segs, err := splitPattern(pattern)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for i, seg := range segs {
		switch seg {
		case WildcardRest:
			if i != len(segs)-1 {
				return ErrInvalidPattern
			}
			if node.rest == nil {
				node.rest = &trieNode[T]{}
			}
			node = node.rest
		case WildcardOne:
			if node.one == nil {
				node.one = &trieNode[T]{}
			}
			node = node.one
		default:
			if node.children == nil {
				node.children = make(map[string]*trieNode[T])
			}
			child := node.children[seg]
			if child == nil {
				child = &trieNode[T]{}
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
	t.size++
	return nil
}

// Remove deletes the route registered under pattern, pruning nodes that no
// longer lead to a route. It reports whether the pattern was registered.
func (t *Trie[T]) Remove(pattern string) bool {
	segs, err := splitPattern(pattern)
	if err != nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	type pathEntry struct {
		node *trieNode[T]
		seg  string
	}
	path := make([]pathEntry, 0, len(segs))

	node := t.root
	for _, seg := range segs {
		path = append(path, pathEntry{node: node, seg: seg})
		switch seg {
		case WildcardRest:
			node = node.rest
		case WildcardOne:
			node = node.one
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
	t.size--

	// Prune empty nodes bottom-up.
	for i := len(path) - 1; i >= 0; i-- {
		parent, seg := path[i].node, path[i].seg
		var child *trieNode[T]
		switch seg {
		case WildcardRest:
			child = parent.rest
		case WildcardOne:
			child = parent.one
		default:
			child = parent.children[seg]
		}
		if child.terminal || len(child.children) > 0 || child.one != nil || child.rest != nil {
			break
		}
		switch seg {
		case WildcardRest:
			parent.rest = nil
		case WildcardOne:
			parent.one = nil
		default:
			delete(parent.children, seg)
		}
	}
	return true
}

// Route implements Router, resolving key against the registered patterns
// with the literal > '+' > '#' precedence.
func (t *Trie[T]) Route(key string) (T, bool) {
	segs := strings.Split(key, Separator)

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.root.match(segs)
	if node == nil {
		var zero T
		return zero, false
	}
	return node.target, true
}

// LongestPrefix finds the registered pattern that matches the longest
// leading run of key's segments using literal segments only. It returns the
// target, the matched pattern, and whether any prefix matched.
func (t *Trie[T]) LongestPrefix(key string) (T, string, bool) {
	segs := strings.Split(key, Separator)

	t.mu.RLock()
	defer t.mu.RUnlock()

	var best *trieNode[T]
	node := t.root
	for _, seg := range segs {
		node = node.children[seg]
		if node == nil {
			break
		}
		if node.terminal {
			best = node
		}
	}

	if best == nil {
		var zero T
		return zero, "", false
	}
	return best.target, best.pattern, true
}

// Len reports the number of registered patterns.
func (t *Trie[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Patterns returns every registered pattern in unspecified order.
func (t *Trie[T]) Patterns() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	patterns := make([]string, 0, t.size)
	t.root.collect(&patterns)
	return patterns
}

func (n *trieNode[T]) match(segs []string) *trieNode[T] {
	if len(segs) == 0 {
		if n.terminal {
			return n
		}
		// '#' matches zero trailing segments.
		if n.rest != nil && n.rest.terminal {
			return n.rest
		}
		return nil
	}

	head, tail := segs[0], segs[1:]
	if child := n.children[head]; child != nil {
		if m := child.match(tail); m != nil {
			return m
		}
	}
	if n.one != nil {
		if m := n.one.match(tail); m != nil {
			return m
		}
	}
	if n.rest != nil && n.rest.terminal {
		return n.rest
	}
	return nil
}

func (n *trieNode[T]) collect(out *[]string) {
	if n.terminal {
		*out = append(*out, n.pattern)
	}
	for _, child := range n.children {
		child.collect(out)
	}
	if n.one != nil {
		n.one.collect(out)
	}
	if n.rest != nil {
		n.rest.collect(out)
	}
}

// splitPattern validates and splits a trie or path pattern.
func splitPattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, ErrEmptyKey
	}
	return strings.Split(pattern, Separator), nil
}
