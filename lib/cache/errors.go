package cache

import "fmt"

type ErrItemNotFound struct {
	key interface{}
}

func (e *ErrItemNotFound) Error() string {
	return fmt.Sprintf("lru_cache: item not found, key: %#v", e.key)
}

type ErrItemAlreadyExists struct {
	key interface{}
}

func (e *ErrItemAlreadyExists) Error() string {
	return fmt.Sprintf("lru_cache: item already exists, key: %#v", e.key)
}
