package analysis

import (
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/closerhq/leadboard/internal/utils"
)

var (
	ErrNoValidLinks   = errors.New("no valid links to analyze")
	ErrAlreadyStarted = errors.New("analysis already submitted for this session")
)

// Link is one URL queued for analysis together with the closer responsible
// for it. Invalid URLs stay in the list but are excluded from submission.
type Link struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Domain    string    `json:"domain"`
	Closer    string    `json:"closer"`
	Valid     bool      `json:"isValid"`
	CreatedAt time.Time `json:"createdAt"`
}

// PayloadLink is the wire form of a link inside the analysis payload.
type PayloadLink struct {
	ID        string `json:"id" validate:"required"`
	URL       string `json:"url" validate:"required,url"`
	Domain    string `json:"domain"`
	Closer    string `json:"closer" validate:"required"`
	CreatedAt string `json:"createdAt" validate:"required"`
}

type Payload struct {
	Links      []PayloadLink `json:"links" validate:"required,min=1,dive"`
	Timestamp  string        `json:"timestamp" validate:"required"`
	TotalLinks int           `json:"totalLinks" validate:"min=1"`
}

// Manager keeps the per-session link list and enforces the at-most-once
// submission guard.
type Manager struct {
	mu        sync.Mutex
	links     map[string][]Link // session -> links
	submitted map[string]bool
	validate  *validator.Validate
	now       func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		links:     make(map[string][]Link),
		submitted: make(map[string]bool),
		validate:  validator.New(),
		now:       time.Now,
	}
}

func (m *Manager) Add(session, rawURL, closer string) Link {
	valid := utils.IsValidURL(rawURL)
	l := Link{
		ID:        utils.NewID(),
		URL:       rawURL,
		Closer:    closer,
		Valid:     valid,
		CreatedAt: m.now(),
	}
	if valid {
		l.Domain = utils.DomainFromURL(rawURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[session] = append(m.links[session], l)
	return l
}

func (m *Manager) Remove(session, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.links[session][:0]
	for _, l := range m.links[session] {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.links[session] = kept
}

func (m *Manager) Links(session string) []Link {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Link, len(m.links[session]))
	copy(out, m.links[session])
	return out
}

// BuildPayload snapshots the valid links of a session into the outbound
// payload, claiming the session's single submission slot. A failed upstream
// call must release the slot via Release so the user can retry.
func (m *Manager) BuildPayload(session string) (Payload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.submitted[session] {
		return Payload{}, ErrAlreadyStarted
	}
	var links []PayloadLink
	for _, l := range m.links[session] {
		if !l.Valid {
			continue
		}
		links = append(links, PayloadLink{
			ID:        l.ID,
			URL:       l.URL,
			Domain:    l.Domain,
			Closer:    l.Closer,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	if len(links) == 0 {
		return Payload{}, ErrNoValidLinks
	}
	p := Payload{
		Links:      links,
		Timestamp:  m.now().Format(time.RFC3339),
		TotalLinks: len(links),
	}
	if err := m.validate.Struct(p); err != nil {
		return Payload{}, err
	}
	m.submitted[session] = true
	return p, nil
}

// Release clears the submission guard, used on upstream failure and on the
// explicit back-to-links action.
func (m *Manager) Release(session string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.submitted, session)
}
