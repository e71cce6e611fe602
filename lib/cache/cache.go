package cache

import (
	"container/list"
	"context"
	"sync"
)

type valHolder[TValue any] struct {
	Value *TValue

	// loaded is closed when loading finished, nil for loaded values
	loaded chan struct{}
	err    error

	ListPosition *list.Element
}

// LRUCache is key value cache bounded by number of items.
//
// Getter is called to load absent keys. Concurrent Get calls for the same absent key
// wait for a single getter call. Failed loads are not kept, so the next Get retries.
//
// The least recently used value is dropped when the bound is exceeded.
type LRUCache[TKey comparable, TValue any] struct {
	mutex        sync.Mutex
	valueHolders map[TKey]*valHolder[TValue]

	getter func(context.Context, TKey) (*TValue, error)

	sizeBound int

	recentRank *list.List
}

// NewLRUCache creates new cache for given size bound
func NewLRUCache[TKey comparable, TValue any](
	sizeBound int,
	getter func(context.Context, TKey) (*TValue, error),
) *LRUCache[TKey, TValue] {
	if sizeBound <= 0 {
		sizeBound = 1
	}
	return &LRUCache[TKey, TValue]{
		valueHolders: make(map[TKey]*valHolder[TValue]),
		getter:       getter,
		sizeBound:    sizeBound,
		recentRank:   list.New(),
	}
}

// Get returns item from cache, loading it if needed.
//
// Context is passed to getter only by the caller that starts the load.
func (c *LRUCache[TKey, TValue]) Get(ctx context.Context, key TKey) (*TValue, error) {
	c.mutex.Lock()
	holder, ok := c.valueHolders[key]
	if ok && holder.loaded == nil {
		c.itemUsed(key, holder)
		c.mutex.Unlock()
		return holder.Value, nil
	}
	if ok {
		loaded := holder.loaded
		c.mutex.Unlock()
		select {
		case <-loaded:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return holder.Value, holder.err
	}

	holder = &valHolder[TValue]{loaded: make(chan struct{})}
	c.valueHolders[key] = holder
	c.mutex.Unlock()

	value, err := c.getter(ctx, key)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	holder.Value = value
	holder.err = err
	close(holder.loaded)
	holder.loaded = nil

	if c.valueHolders[key] != holder {
		// Removed while loading, the loaded value is handed out but not kept
		return value, err
	}
	if err != nil {
		delete(c.valueHolders, key)
		return nil, err
	}
	c.itemUsed(key, holder)
	c.removeItemsIfNeeded()
	return value, nil
}

// Insert puts value inside cache.
//
// The value must not be present inside cache, otherwise ErrItemAlreadyExists is returned
func (c *LRUCache[TKey, TValue]) Insert(key TKey, val *TValue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, ok := c.valueHolders[key]; ok {
		return &ErrItemAlreadyExists{key: key}
	}
	holder := &valHolder[TValue]{Value: val}
	c.valueHolders[key] = holder
	c.itemUsed(key, holder)
	c.removeItemsIfNeeded()
	return nil
}

// Remove drops item from cache. If item is absent, ErrItemNotFound is returned
func (c *LRUCache[TKey, TValue]) Remove(key TKey) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.valueHolders[key]; !ok {
		return &ErrItemNotFound{key: key}
	}
	c.removeSingleItem(key)
	return nil
}

// Len returns number of loaded and loading items
func (c *LRUCache[TKey, TValue]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.valueHolders)
}

// Mutex must be locked
func (c *LRUCache[TKey, TValue]) itemUsed(key TKey, holder *valHolder[TValue]) {
	if holder.ListPosition != nil {
		c.recentRank.MoveToBack(holder.ListPosition)
	} else {
		holder.ListPosition = c.recentRank.PushBack(key)
	}
}

// Mutex must be locked
func (c *LRUCache[TKey, TValue]) removeItemsIfNeeded() {
	for c.recentRank.Len() > c.sizeBound {
		c.removeSingleItem(c.recentRank.Front().Value.(TKey))
	}
}

// Mutex must be locked, key must be present
func (c *LRUCache[TKey, TValue]) removeSingleItem(key TKey) {
	holder := c.valueHolders[key]
	delete(c.valueHolders, key)
	if holder.ListPosition != nil {
		c.recentRank.Remove(holder.ListPosition)
		holder.ListPosition = nil
	}
}
