package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-memory storage backend used when the config selects
// the "memory" driver (local development without AWS) and by the handler
// tests. All facades share one mutex, which gives the same observable
// guarantees as the DynamoDB transaction: admission is check+append+increment
// under a single lock, and no reader observes a half-applied admission.
type MemoryStore struct {
	mu           sync.Mutex
	participants map[string]*Participant
	ledger       map[string]*VoteLedgerEntry
	settings     map[string]string
	photos       map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		participants: make(map[string]*Participant),
		ledger:       make(map[string]*VoteLedgerEntry),
		settings:     make(map[string]string),
		photos:       make(map[string]bool),
	}
}

func (m *MemoryStore) Participants() ParticipantStorage { return &memoryParticipants{m} }
func (m *MemoryStore) Ledger() VoteLedgerStorage        { return &memoryLedger{m} }
func (m *MemoryStore) Admission() VoteAdmissionStorage  { return &memoryAdmission{m} }
func (m *MemoryStore) Settings() SettingStorage         { return &memorySettings{m} }
func (m *MemoryStore) Photos() PhotoStorage             { return &memoryPhotos{m} }

type memoryParticipants struct{ store *MemoryStore }

func (s *memoryParticipants) Get(_ context.Context, id string) (*Participant, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.participants[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memoryParticipants) GetAll(_ context.Context) ([]*Participant, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	participants := make([]*Participant, 0, len(s.store.participants))
	for _, p := range s.store.participants {
		cp := *p
		participants = append(participants, &cp)
	}
	return participants, nil
}

func (s *memoryParticipants) Create(_ context.Context, participant *Participant) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.participants[participant.ID]; exists {
		return ErrItemWithIDAlreadyExists
	}
	if participant.CreatedAt.IsZero() {
		participant.CreatedAt = time.Now().UTC()
	}
	participant.VoteCount = 0
	cp := *participant
	s.store.participants[participant.ID] = &cp
	return nil
}

func (s *memoryParticipants) Update(_ context.Context, participant *Participant) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	existing, ok := s.store.participants[participant.ID]
	if !ok {
		return ErrParticipantNotFound
	}
	// Editable fields only; the tally belongs to admission and reset.
	existing.Name = participant.Name
	existing.Description = participant.Description
	existing.PhotoURL = participant.PhotoURL
	existing.Number = participant.Number
	return nil
}

func (s *memoryParticipants) Delete(_ context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	delete(s.store.participants, id)
	return nil
}

type memoryLedger struct{ store *MemoryStore }

func (s *memoryLedger) Get(_ context.Context, visitorID string) (*VoteLedgerEntry, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	e, ok := s.store.ledger[visitorID]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *memoryLedger) GetAll(_ context.Context) ([]*VoteLedgerEntry, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	entries := make([]*VoteLedgerEntry, 0, len(s.store.ledger))
	for _, e := range s.store.ledger {
		cp := *e
		entries = append(entries, &cp)
	}
	return entries, nil
}

type memoryAdmission struct{ store *MemoryStore }

func (s *memoryAdmission) Admit(_ context.Context, entry *VoteLedgerEntry) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.ledger[entry.VisitorID]; exists {
		return ErrVisitorAlreadyVoted
	}
	participant, ok := s.store.participants[entry.ParticipantID]
	if !ok {
		return ErrParticipantNotFound
	}

	cp := *entry
	s.store.ledger[entry.VisitorID] = &cp
	participant.VoteCount++
	return nil
}

func (s *memoryAdmission) ResetAll(_ context.Context) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, p := range s.store.participants {
		p.VoteCount = 0
	}
	s.store.ledger = make(map[string]*VoteLedgerEntry)
	return nil
}

type memorySettings struct{ store *MemoryStore }

func (s *memorySettings) Get(_ context.Context, key string) (*Setting, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	value, ok := s.store.settings[key]
	if !ok {
		return nil, ErrSettingNotFound
	}
	return &Setting{Key: key, Value: value}, nil
}

func (s *memorySettings) GetAll(_ context.Context) ([]*Setting, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	settings := make([]*Setting, 0, len(s.store.settings))
	for k, v := range s.store.settings {
		settings = append(settings, &Setting{Key: k, Value: v})
	}
	return settings, nil
}

func (s *memorySettings) Put(_ context.Context, setting *Setting) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.settings[setting.Key] = setting.Value
	return nil
}

type memoryPhotos struct{ store *MemoryStore }

func (s *memoryPhotos) PresignUpload(_ context.Context, key string, _ string) (string, string, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	publicURL := fmt.Sprintf("memory://photos/%s", key)
	s.store.photos[publicURL] = true
	return publicURL, publicURL, nil
}

func (s *memoryPhotos) Delete(_ context.Context, publicURL string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if !s.store.photos[publicURL] {
		return fmt.Errorf("no stored photo for URL %s", publicURL)
	}
	delete(s.store.photos, publicURL)
	return nil
}
