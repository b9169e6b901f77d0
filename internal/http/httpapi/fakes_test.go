package httpapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webshunter/animemacker/internal/domain"
)

type memCharacters struct {
	mu    sync.Mutex
	items []domain.Character // newest first
}

func (m *memCharacters) Create(_ context.Context, c *domain.Character) (*domain.Character, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: character name is required", domain.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *c
	out.ID = uuid.NewString()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	m.items = append([]domain.Character{out}, m.items...)
	return &out, nil
}

func (m *memCharacters) Update(_ context.Context, c *domain.Character) (*domain.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == c.ID {
			cur := &m.items[i]
			cur.Name, cur.Description, cur.Appearance, cur.Personality = c.Name, c.Description, c.Appearance, c.Personality
			cur.UpdatedAt = time.Now()
			out := *cur
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCharacters) Get(_ context.Context, id string) (*domain.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCharacters) Latest(context.Context) (*domain.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return nil, domain.ErrNotFound
	}
	out := m.items[0]
	return &out, nil
}

func (m *memCharacters) List(context.Context, int) ([]domain.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Character(nil), m.items...), nil
}

func (m *memCharacters) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.items {
		if c.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memCharacters) SetPortrait(_ context.Context, id, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].PortraitKey = &key
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memCharacters) UpsertLatest(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	latest, err := m.Latest(ctx)
	if err != nil {
		return m.Create(ctx, c)
	}
	next := *c
	next.ID = latest.ID
	return m.Update(ctx, &next)
}

type memCreations struct {
	mu    sync.Mutex
	items []domain.Creation
}

func (m *memCreations) Create(_ context.Context, c *domain.Creation) (*domain.Creation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *c
	out.ID = uuid.NewString()
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	m.items = append([]domain.Creation{out}, m.items...)
	return &out, nil
}

func (m *memCreations) Get(_ context.Context, id string) (*domain.Creation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCreations) List(context.Context, int) ([]domain.Creation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Creation(nil), m.items...), nil
}

func (m *memCreations) Update(_ context.Context, id string, s domain.SceneOutput) (*domain.Creation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Title, m.items[i].ImagePrompt, m.items[i].VideoPrompt = s.Title, s.ImagePrompt, s.VideoPrompt
			out := m.items[i]
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCreations) SetImage(_ context.Context, id, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].ImageKey = &key
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memCreations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.items {
		if c.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
