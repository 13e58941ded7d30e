// Package memory provides the in-memory rule set store used by tests and
// development. It intentionally favors clarity over performance.
package memory

import (
	"context"
	"sync"
	"time"

	"visapath/internal/ruleset"
	"visapath/pkg/domain"
	"visapath/pkg/platform/sentinel"
)

// Store keeps rule set versions under a RWMutex. Values are copied on the way
// in and out so a reader never observes a draft mutation in flight; Approve
// swaps a fully-built value under the write lock, which gives the atomic
// publish the resolution path relies on.
type Store struct {
	mu       sync.RWMutex
	versions map[domain.RuleSetID]*ruleset.Version
}

func New() *Store {
	return &Store{versions: make(map[domain.RuleSetID]*ruleset.Version)}
}

func (s *Store) ActiveVersion(_ context.Context, country domain.CountryCode, visaType domain.VisaType) (*ruleset.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active *ruleset.Version
	for _, v := range s.versions {
		if v.CountryCode != country || v.VisaType != visaType || !v.Approved {
			continue
		}
		if active == nil || v.Number > active.Number {
			active = v
		}
	}
	if active == nil {
		return nil, sentinel.ErrNotFound
	}
	return copyVersion(active), nil
}

func (s *Store) FindByID(_ context.Context, id domain.RuleSetID) (*ruleset.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.versions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyVersion(v), nil
}

func (s *Store) CreateDraft(_ context.Context, draft *ruleset.Version) (*ruleset.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := 1
	for _, v := range s.versions {
		if v.CountryCode == draft.CountryCode && v.VisaType == draft.VisaType && v.Number >= next {
			next = v.Number + 1
		}
	}
	if floor := ruleset.MinimumNumber(draft.Documents); next < floor {
		next = floor
	}

	stored := copyVersion(draft)
	stored.Number = next
	stored.Approved = false
	stored.ApprovedAt = nil
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.versions[stored.ID] = stored
	return copyVersion(stored), nil
}

func (s *Store) Approve(_ context.Context, id domain.RuleSetID) (*ruleset.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.versions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if v.Approved {
		return nil, sentinel.ErrAlreadyApproved
	}

	approved := copyVersion(v)
	approved.Approved = true
	now := time.Now()
	approved.ApprovedAt = &now
	s.versions[id] = approved
	return copyVersion(approved), nil
}

func (s *Store) Patch(_ context.Context, id domain.RuleSetID, documents []ruleset.Document) (*ruleset.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.versions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if v.Approved {
		return nil, sentinel.ErrImmutableVersion
	}

	patched := copyVersion(v)
	patched.Documents = append([]ruleset.Document{}, documents...)
	if floor := ruleset.MinimumNumber(documents); patched.Number < floor {
		// The bump must land on a number no other version of the pair
		// holds, or per-pair numbering stops being strictly increasing.
		next := floor
		for _, other := range s.versions {
			if other.ID == id || other.CountryCode != v.CountryCode || other.VisaType != v.VisaType {
				continue
			}
			if other.Number >= next {
				next = other.Number + 1
			}
		}
		patched.Number = next
	}
	s.versions[id] = patched
	return copyVersion(patched), nil
}

func copyVersion(v *ruleset.Version) *ruleset.Version {
	out := *v
	out.Documents = append([]ruleset.Document{}, v.Documents...)
	if v.ApprovedAt != nil {
		at := *v.ApprovedAt
		out.ApprovedAt = &at
	}
	return &out
}
