package local

import (
	"sync"

	"gitlab.mdcatapult.io/informatics/software-engineering/utterance-labelling/lib/cache"
)

func New() *Store {
	return &Store{
		store: make(map[string]*cache.Entry),
		mut:   &sync.RWMutex{},
	}
}

// Store is an in process cache.Client. It never evicts.
type Store struct {
	store map[string]*cache.Entry
	mut   *sync.RWMutex
}

func (l *Store) Get(key string) (*cache.Entry, error) {
	l.mut.RLock()
	defer l.mut.RUnlock()

	entry, ok := l.store[key]
	if !ok {
		return nil, nil
	}

	return entry, nil
}

func (l *Store) Set(key string, entry *cache.Entry) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	l.store[key] = entry
	return nil
}

func (l *Store) Delete(key string) {
	l.mut.Lock()
	defer l.mut.Unlock()

	delete(l.store, key)
}

func (l *Store) Ready() bool {
	return true
}
