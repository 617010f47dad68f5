package tickettest

import (
	"context"
	"sort"
	"sync"

	"github.com/Jacobbrewer1/neutron/pkg/custom"
	"github.com/Jacobbrewer1/neutron/pkg/dataaccess"
	"github.com/Jacobbrewer1/neutron/pkg/entities"
)

var _ dataaccess.Store = new(Store)

// Store is an in-memory store with the same uniqueness and conditional update rules as the real ones.
type Store struct {
	mut sync.Mutex

	nextPanel  int64
	nextTicket int64

	panels  map[int64]entities.Panel
	tickets map[int64]entities.Ticket

	// SkipOpenCheck makes HasOpenTicket always report false, as a racing create would see it.
	SkipOpenCheck bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		panels:  make(map[int64]entities.Panel),
		tickets: make(map[int64]entities.Ticket),
	}
}

func (s *Store) CreatePanel(_ context.Context, panel *entities.Panel) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.nextPanel++
	panel.ID = s.nextPanel
	panel.CreatedAt = custom.Now()
	s.panels[panel.ID] = *panel
	return nil
}

func (s *Store) GetPanel(_ context.Context, id int64) (*entities.Panel, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	p, ok := s.panels[id]
	if !ok {
		return nil, dataaccess.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListPanelsByGuild(_ context.Context, guildID string) ([]*entities.Panel, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	panels := make([]*entities.Panel, 0)
	for _, p := range s.panels {
		if p.GuildID == guildID {
			p := p
			panels = append(panels, &p)
		}
	}
	sort.Slice(panels, func(i, j int) bool {
		return panels[i].ID < panels[j].ID
	})
	return panels, nil
}

func (s *Store) DeletePanel(_ context.Context, id int64) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if _, ok := s.panels[id]; !ok {
		return dataaccess.ErrNotFound
	}
	delete(s.panels, id)
	return nil
}

func (s *Store) CreateTicket(_ context.Context, ticket *entities.Ticket) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	for _, t := range s.tickets {
		if t.IsOpen() && t.CreatorID == ticket.CreatorID && t.PanelID == ticket.PanelID {
			return dataaccess.ErrDuplicate
		}
	}

	s.nextTicket++
	ticket.ID = s.nextTicket
	ticket.Status = entities.TicketStatusOpen
	ticket.CreatedAt = custom.Now()
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *Store) GetTicketByChannel(_ context.Context, channelID string) (*entities.Ticket, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	for _, t := range s.tickets {
		if t.ChannelID == channelID {
			return &t, nil
		}
	}
	return nil, dataaccess.ErrNotFound
}

func (s *Store) HasOpenTicket(_ context.Context, creatorID string, panelID int64) (bool, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.SkipOpenCheck {
		return false, nil
	}
	for _, t := range s.tickets {
		if t.IsOpen() && t.CreatorID == creatorID && t.PanelID == panelID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ClaimTicket(_ context.Context, id int64, claimantID string) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return dataaccess.ErrNotFound
	}
	if t.IsClaimed() {
		return dataaccess.ErrConflict
	}
	t.ClaimedBy = claimantID
	s.tickets[id] = t
	return nil
}

func (s *Store) CloseTicket(_ context.Context, id int64) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return dataaccess.ErrNotFound
	}
	if !t.IsOpen() {
		return dataaccess.ErrConflict
	}
	t.Status = entities.TicketStatusClosed
	t.ClosedAt = custom.Now()
	s.tickets[id] = t
	return nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close(context.Context) error {
	return nil
}

// Ticket returns a copy of the ticket with the ID.
func (s *Store) Ticket(id int64) (entities.Ticket, bool) {
	s.mut.Lock()
	defer s.mut.Unlock()

	t, ok := s.tickets[id]
	return t, ok
}

// TicketCount returns the number of tickets held.
func (s *Store) TicketCount() int {
	s.mut.Lock()
	defer s.mut.Unlock()
	return len(s.tickets)
}
