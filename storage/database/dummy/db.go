package dummydb

import (
	"sync"

	"github.com/campushub/support-service/core/support"
)

type supportTable struct {
	mutex sync.RWMutex
	table map[string]*support.Support
}

// DB is an in-memory database for tests and local development.
type DB struct {
	support *supportTable
}

func Open() (*DB, error) {
	db := &DB{
		support: &supportTable{table: make(map[string]*support.Support)},
	}
	return db, nil
}
