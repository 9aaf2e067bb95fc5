// Package reactive provides dependency-tracked primitives (signals,
// computed values, effects) for host applications to keep their own
// state in. The engine does not use them; it notices changes by diffing
// the element tree the host hands it.
package reactive

import (
	"reflect"
	"sync"
)

// Getter is a type-erased interface for Signals and Computeds.
type Getter interface {
	GetValue() interface{}
}

// Dependency is something that can be depended on (Signal, Computed).
type Dependency interface {
	subscribe(s Subscriber)
	unsubscribe(s Subscriber)
}

// Subscriber is something that depends on others (Effect, Computed).
type Subscriber interface {
	onDependencyUpdated()
	addDependency(d Dependency)
}

var (
	activeSubscriber Subscriber
	activeMu         sync.Mutex

	batchDepth int
	batchQueue map[Subscriber]struct{}
	batchMu    sync.Mutex
)

// Batch runs fn and defers subscriber notification until the outermost
// Batch call returns, so a sequence of state changes notifies each
// affected subscriber at most once.
func Batch(fn func()) {
	batchMu.Lock()
	batchDepth++
	batchMu.Unlock()

	defer func() {
		batchMu.Lock()
		batchDepth--
		if batchDepth == 0 && len(batchQueue) > 0 {
			queue := batchQueue
			batchQueue = nil
			batchMu.Unlock()

			for sub := range queue {
				sub.onDependencyUpdated()
			}
		} else {
			batchMu.Unlock()
		}
	}()

	fn()
}

// Signal is a reactive value cell.
type Signal[T any] struct {
	value       T
	subscribers map[Subscriber]struct{}
	mu          sync.RWMutex
}

// NewSignal creates a Signal holding the given initial value.
func NewSignal[T any](val T) *Signal[T] {
	return &Signal[T]{
		value:       val,
		subscribers: make(map[Subscriber]struct{}),
	}
}

func (s *Signal[T]) subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[sub] = struct{}{}
}

func (s *Signal[T]) unsubscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, sub)
}

// GetValue implements Getter.
func (s *Signal[T]) GetValue() interface{} {
	return s.Get()
}

// Get reads the value and, if called from inside a Computed or Effect,
// registers that subscriber against this signal.
func (s *Signal[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()

	if current != nil {
		current.addDependency(s)
		s.subscribe(current)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek reads the value without registering a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores val and notifies subscribers if it differs from the current
// value. Equality is structural (reflect.DeepEqual), matching the element
// tree's own notion of "same content, skip the frame".
func (s *Signal[T]) Set(val T) {
	s.mu.Lock()
	if reflect.DeepEqual(s.value, val) {
		s.mu.Unlock()
		return
	}
	s.value = val

	subs := make([]Subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

// Computed is a cached value derived from other signals.
type Computed[T any] struct {
	fn           func() T
	value        T
	dirty        bool
	dependencies map[Dependency]struct{}
	subscribers  map[Subscriber]struct{}
	mu           sync.Mutex
}

// NewComputed creates a Computed that lazily (re)evaluates fn.
func NewComputed[T any](fn func() T) *Computed[T] {
	return &Computed[T]{
		fn:           fn,
		dirty:        true,
		dependencies: make(map[Dependency]struct{}),
		subscribers:  make(map[Subscriber]struct{}),
	}
}

func (c *Computed[T]) subscribe(sub Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers[sub] = struct{}{}
}

func (c *Computed[T]) unsubscribe(sub Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscribers, sub)
}

func (c *Computed[T]) addDependency(d Dependency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dependencies[d] = struct{}{}
}

func (c *Computed[T]) onDependencyUpdated() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true

	subs := make([]Subscriber, 0, len(c.subscribers))
	for sub := range c.subscribers {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

// GetValue implements Getter.
func (c *Computed[T]) GetValue() interface{} {
	return c.Get()
}

// Get returns the cached value, recomputing it first if a dependency
// changed since the last evaluation.
func (c *Computed[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()

	if current != nil {
		current.addDependency(c)
		c.subscribe(current)
	}

	c.mu.Lock()
	if c.dirty {
		for dep := range c.dependencies {
			dep.unsubscribe(c)
		}
		c.dependencies = make(map[Dependency]struct{})

		activeMu.Lock()
		prev := activeSubscriber
		activeSubscriber = c
		activeMu.Unlock()

		// fn may itself read other signals, so unlock c.mu while it runs.
		c.mu.Unlock()
		val := c.fn()
		c.mu.Lock()

		c.value = val
		c.dirty = false

		activeMu.Lock()
		activeSubscriber = prev
		activeMu.Unlock()
	}
	defer c.mu.Unlock()
	return c.value
}

// Effect is a side effect re-run whenever one of its dependencies changes.
type Effect struct {
	fn           func()
	dependencies map[Dependency]struct{}
	mu           sync.Mutex
	disposed     bool
}

// CreateEffect registers fn as an effect and runs it once immediately.
func CreateEffect(fn func()) *Effect {
	e := &Effect{
		fn:           fn,
		dependencies: make(map[Dependency]struct{}),
	}
	e.Run()
	return e
}

func (e *Effect) addDependency(d Dependency) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dependencies[d] = struct{}{}
}

func (e *Effect) onDependencyUpdated() {
	batchMu.Lock()
	if batchDepth > 0 {
		if batchQueue == nil {
			batchQueue = make(map[Subscriber]struct{})
		}
		batchQueue[e] = struct{}{}
		batchMu.Unlock()
		return
	}
	batchMu.Unlock()

	e.Run()
}

// Run re-executes fn, replacing the dependency set with whatever fn touches
// this time. Unsubscribe-then-resubscribe rather than diffing: simpler and
// the dependency sets here are small (frame-scoped pseudo-class state).
func (e *Effect) Run() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}

	oldDeps := e.dependencies
	e.dependencies = make(map[Dependency]struct{})
	e.mu.Unlock()

	for dep := range oldDeps {
		dep.unsubscribe(e)
	}

	activeMu.Lock()
	prev := activeSubscriber
	activeSubscriber = e
	activeMu.Unlock()

	e.fn()

	activeMu.Lock()
	activeSubscriber = prev
	activeMu.Unlock()
}

// Dispose permanently detaches the effect from its dependencies.
func (e *Effect) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	for dep := range e.dependencies {
		dep.unsubscribe(e)
	}
	e.dependencies = nil
}
