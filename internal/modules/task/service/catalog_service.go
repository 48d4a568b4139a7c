package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"laprun/internal/modules/task/domain"
	taskout "laprun/internal/modules/task/port/out"
	"laprun/internal/platform/logx"
)

const (
	KeyTasks   = "tasks"
	KeyLapList = "lapList"
	KeyLastID  = "lastId"
	KeyPanels  = "panelCollapseState"
)

type taskRecord struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	CategoryID     string `json:"categoryId"`
	Duration       int    `json:"duration"`
	LapInterval    int    `json:"lapInterval"`
	GrowthFactor   int    `json:"growthFactor"`
	MaxOccurrences int    `json:"maxOccurrences"`
}

// CatalogService loads and stores the catalog as JSON values in a KVStore.
// Mutations go through Update so concurrent callers cannot interleave a
// load-modify-save cycle.
type CatalogService struct {
	mu    sync.Mutex
	store taskout.KVStore
	log   logx.Logger
}

func NewCatalogService(store taskout.KVStore, log logx.Logger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

func (s *CatalogService) Load(ctx context.Context) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *CatalogService) Update(ctx context.Context, fn func(*domain.Catalog) error) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.load(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	if err := fn(&c); err != nil {
		return domain.Catalog{}, err
	}
	if err := s.save(ctx, c); err != nil {
		return domain.Catalog{}, err
	}
	return c, nil
}

func (s *CatalogService) load(ctx context.Context) (domain.Catalog, error) {
	records := []taskRecord{}
	c := domain.Catalog{Panels: map[string]bool{}}
	if err := s.decode(ctx, KeyTasks, &records); err != nil {
		return domain.Catalog{}, err
	}
	if err := s.decode(ctx, KeyLapList, &c.LapList); err != nil {
		return domain.Catalog{}, err
	}
	if err := s.decode(ctx, KeyLastID, &c.LastID); err != nil {
		return domain.Catalog{}, err
	}
	if err := s.decode(ctx, KeyPanels, &c.Panels); err != nil {
		return domain.Catalog{}, err
	}
	if c.Panels == nil {
		c.Panels = map[string]bool{}
	}
	for _, r := range records {
		t := domain.Task(r).Normalize()
		c.Tasks = append(c.Tasks, t)
		if t.ID > c.LastID {
			s.log.Warn("stored lastId is behind task ids", logx.Int("last_id", c.LastID), logx.Int("task", t.ID))
			c.LastID = t.ID
		}
	}
	return c, nil
}

func (s *CatalogService) decode(ctx context.Context, key string, target any) error {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *CatalogService) save(ctx context.Context, c domain.Catalog) error {
	records := make([]taskRecord, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		records = append(records, taskRecord(t))
	}
	lapList := c.LapList
	if lapList == nil {
		lapList = []int{}
	}
	values := map[string][]byte{}
	for key, v := range map[string]any{
		KeyTasks:   records,
		KeyLapList: lapList,
		KeyLastID:  c.LastID,
		KeyPanels:  c.Panels,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = raw
	}
	if err := s.store.SetMany(ctx, values); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
