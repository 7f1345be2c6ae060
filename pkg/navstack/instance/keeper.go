// Package instance retains state objects for the lifetime of a navigation
// entry.
//
// Each stack entry and each overlay owns a Keeper. Screens store their
// state (form input, nested stacks) in it and get the same object back for
// as long as the entry stays on the stack. When the entry is removed the
// keeper is destroyed and every instance receives OnDestroy exactly once.
package instance

import (
	"reflect"
	"sort"
	"sync"
)

// Instance is any state object a Keeper can hold.
type Instance interface {
	OnDestroy()
}

// Func adapts a plain function into an Instance's destroy hook.
type Func func()

func (f Func) OnDestroy() {
	if f != nil {
		f()
	}
}

// Keeper stores instances by key.
type Keeper struct {
	mu        sync.Mutex
	instances map[string]Instance
	order     map[string]int
	seq       int
	destroyed bool
}

// NewKeeper creates an empty Keeper.
func NewKeeper() *Keeper {
	return &Keeper{
		instances: make(map[string]Instance),
		order:     make(map[string]int),
	}
}

// Get returns the instance stored under key.
func (k *Keeper) Get(key string) (Instance, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	inst, ok := k.instances[key]
	return inst, ok
}

// Put stores inst under key, destroying whatever was there before.
// Putting into a destroyed keeper destroys inst immediately.
func (k *Keeper) Put(key string, inst Instance) {
	k.mu.Lock()
	if k.destroyed {
		k.mu.Unlock()
		inst.OnDestroy()
		return
	}
	prev, had := k.instances[key]
	k.instances[key] = inst
	k.seq++
	k.order[key] = k.seq
	k.mu.Unlock()

	if had && !same(prev, inst) {
		prev.OnDestroy()
	}
}

// same reports whether a and b are the same instance. Instances of
// uncomparable types, such as Func, are never the same.
func same(a, b Instance) bool {
	t := reflect.TypeOf(a)
	return t != nil && t == reflect.TypeOf(b) && t.Comparable() && a == b
}

// Remove takes the instance out of the keeper without destroying it.
func (k *Keeper) Remove(key string) (Instance, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	inst, ok := k.instances[key]
	delete(k.instances, key)
	delete(k.order, key)
	return inst, ok
}

// Len returns the number of held instances.
func (k *Keeper) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.instances)
}

// IsDestroyed reports whether Destroy has been called.
func (k *Keeper) IsDestroyed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.destroyed
}

// Destroy calls OnDestroy on every held instance, most recently stored
// first, and empties the keeper. Subsequent calls do nothing.
func (k *Keeper) Destroy() {
	k.mu.Lock()
	if k.destroyed {
		k.mu.Unlock()
		return
	}
	k.destroyed = true

	keys := make([]string, 0, len(k.instances))
	for key := range k.instances {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return k.order[keys[i]] > k.order[keys[j]] })

	victims := make([]Instance, 0, len(keys))
	for _, key := range keys {
		victims = append(victims, k.instances[key])
	}
	k.instances = make(map[string]Instance)
	k.order = make(map[string]int)
	k.mu.Unlock()

	for _, inst := range victims {
		inst.OnDestroy()
	}
}

// GetOrCreate returns the instance of type T stored under key, creating and
// storing it with factory when absent. An existing instance of a different
// type is replaced.
func GetOrCreate[T Instance](k *Keeper, key string, factory func() T) T {
	if inst, ok := k.Get(key); ok {
		if typed, ok := inst.(T); ok {
			return typed
		}
	}
	created := factory()
	k.Put(key, created)
	return created
}
