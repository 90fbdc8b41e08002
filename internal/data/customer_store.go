package data

import (
	"fmt"
	"strings"
	"sync"
)

// CustomerStore holds the canonical customer collection in memory.
//
// Mutations always replace whole customers, never individual fields in place,
// so a concurrent reader either sees a customer before an update or after it,
// never in between. The collection itself is replaced wholesale on import;
// there is no merge policy.
type CustomerStore struct {
	mu        sync.RWMutex
	customers []*Customer
	notice    string
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{}
}

// ReplaceAll swaps in a new batch, discarding the previous collection and any
// aggregate notice.
func (s *CustomerStore) ReplaceAll(customers []*Customer) {
	cloned := make([]*Customer, 0, len(customers))
	for _, customer := range customers {
		cloned = append(cloned, customer.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = cloned
	s.notice = ""
}

// GetAll returns copies of every customer, in insertion order.
func (s *CustomerStore) GetAll() []*Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]*Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		customers = append(customers, customer.Clone())
	}
	return customers
}

// Search returns copies of the customers whose name or email contains the
// term, case-insensitively. An empty term matches everyone.
func (s *CustomerStore) Search(term string) []*Customer {
	if term == "" {
		return s.GetAll()
	}
	needle := strings.ToLower(term)

	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := []*Customer{}
	for _, customer := range s.customers {
		if strings.Contains(strings.ToLower(customer.Name), needle) || strings.Contains(strings.ToLower(customer.Email), needle) {
			customers = append(customers, customer.Clone())
		}
	}
	return customers
}

func (s *CustomerStore) Get(id string) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, customer := range s.customers {
		if customer.ID == id {
			return customer.Clone(), nil
		}
	}
	return nil, fmt.Errorf("getting customer %s: %w", id, ErrRecordNotFound)
}

// Update applies mutate to a copy of the customer and swaps the copy in. The
// per-customer error message is cleared before mutate runs, so any successful
// update resets it unless mutate sets a new one.
func (s *CustomerStore) Update(id string, mutate func(*Customer)) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, customer := range s.customers {
		if customer.ID != id {
			continue
		}
		updated := customer.Clone()
		updated.Error = ""
		mutate(updated)
		s.customers[i] = updated
		return updated.Clone(), nil
	}
	return nil, fmt.Errorf("updating customer %s: %w", id, ErrRecordNotFound)
}

func (s *CustomerStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers)
}

// SetNotice records the aggregate-level notice, mirroring the single global
// banner the UI shows. Only the most recent notice is kept.
func (s *CustomerStore) SetNotice(notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = notice
}

func (s *CustomerStore) Notice() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notice
}
