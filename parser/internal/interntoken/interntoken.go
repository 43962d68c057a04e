// Package interntoken deduplicates identifier text so that every occurrence
// of a name in a program shares one backing string.
package interntoken

import (
	"sync"
)

// Table is a set of interned strings.  A nil Table interns nothing.
type Table struct {
	mut    sync.RWMutex
	intern map[string]*string
}

func NewTable() *Table {
	return &Table{
		intern: make(map[string]*string),
	}
}

// Get returns a string that equals s.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	p, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return *p
	}
	return tab.insert(s)
}

// Len returns the number of distinct strings in tab.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	tab.mut.RLock()
	defer tab.mut.RUnlock()
	return len(tab.intern)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	p, ok := tab.intern[s]
	if !ok {
		p = &s
		tab.intern[s] = p
	}
	tab.mut.Unlock()
	return *p
}
