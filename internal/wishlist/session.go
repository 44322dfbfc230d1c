package wishlist

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Session keeps a local view of one user's wishlist so the UI can flip
// hearts without waiting on the database. Toggles apply locally first and
// roll back when persistence fails.
type Session struct {
	svc    Service
	userID uuid.UUID

	mu    sync.Mutex
	items map[uuid.UUID]struct{}
}

// NewSession loads the user's current wishlist into a session cache.
func NewSession(ctx context.Context, svc Service, userID uuid.UUID) (*Session, error) {
	ids, err := svc.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		items[id] = struct{}{}
	}
	return &Session{
		svc:    svc,
		userID: userID,
		items:  items,
	}, nil
}

// IsWishlisted reports the local membership state without touching storage.
func (s *Session) IsWishlisted(productID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[productID]
	return ok
}

// ProductIDs returns a snapshot of the locally known membership.
func (s *Session) ProductIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	return ids
}

// Toggle flips membership optimistically, persists the flip, and rolls the
// local state back when persistence fails. The boolean reports whether the
// persisted toggle succeeded.
func (s *Session) Toggle(ctx context.Context, productID uuid.UUID) bool {
	s.mu.Lock()
	_, wasWishlisted := s.items[productID]
	if wasWishlisted {
		delete(s.items, productID)
	} else {
		s.items[productID] = struct{}{}
	}
	s.mu.Unlock()

	nowWishlisted, err := s.svc.Toggle(ctx, s.userID, productID)
	if err != nil {
		s.mu.Lock()
		if wasWishlisted {
			s.items[productID] = struct{}{}
		} else {
			delete(s.items, productID)
		}
		s.mu.Unlock()
		return false
	}

	// Reconcile with what actually persisted.
	s.mu.Lock()
	if nowWishlisted {
		s.items[productID] = struct{}{}
	} else {
		delete(s.items, productID)
	}
	s.mu.Unlock()
	return true
}
