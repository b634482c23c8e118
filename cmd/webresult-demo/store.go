package main

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/leeforge/webresult/pagination"
)

type Item struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// itemPage is a window of items plus the size of the whole list.
type itemPage struct {
	Items     []Item `json:"items"`
	FullCount int    `json:"full_count"`
}

var sortKeys = map[string]func(a, b Item) bool{
	"id":    func(a, b Item) bool { return a.ID < b.ID },
	"name":  func(a, b Item) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
	"price": func(a, b Item) bool { return a.Price < b.Price },
}

type store struct {
	mu    sync.RWMutex
	items []Item
}

func newStore(seed ...Item) *store {
	return &store{items: append([]Item(nil), seed...)}
}

func (s *store) get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func (s *store) add(name string, price float64) Item {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	it := Item{ID: id.String(), Name: name, Price: price}

	s.mu.Lock()
	s.items = append(s.items, it)
	s.mu.Unlock()
	return it
}

// list assumes opts.Sort, when set, is a key of sortKeys.
func (s *store) list(opts pagination.ListOptions) itemPage {
	s.mu.RLock()
	all := append([]Item(nil), s.items...)
	s.mu.RUnlock()

	if opts.Sort != nil {
		less := sortKeys[*opts.Sort]
		sort.SliceStable(all, func(i, j int) bool { return less(all[i], all[j]) })
	}
	if opts.Order != nil && *opts.Order == pagination.Desc {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}

	offset, limit := opts.Window()
	total := uint64(len(all))
	start := min(offset, total)
	end := min(start+limit, total)

	return itemPage{Items: all[start:end], FullCount: len(all)}
}
