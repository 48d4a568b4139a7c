package service_test

import (
	"context"
	"errors"
	"testing"

	"laprun/internal/modules/task/domain"
	"laprun/internal/modules/task/service"
	"laprun/internal/platform/logx"
)

type memoryKV struct {
	values map[string][]byte
	err    error
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) SetMany(_ context.Context, values map[string][]byte) error {
	if m.err != nil {
		return m.err
	}
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func TestLoadEmptyStore(t *testing.T) {
	t.Parallel()
	svc := service.NewCatalogService(&memoryKV{values: map[string][]byte{}}, logx.Nop())
	c, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Tasks) != 0 || len(c.LapList) != 0 || c.LastID != 0 || c.Panels == nil {
		t.Fatalf("unexpected empty catalog %+v", c)
	}
}

func TestLoadNormalizesLegacyRecords(t *testing.T) {
	t.Parallel()
	kv := &memoryKV{values: map[string][]byte{
		service.KeyTasks:   []byte(`[{"id":7,"title":"Old","categoryId":"cat-5","duration":90}]`),
		service.KeyLapList: []byte(`[7]`),
		service.KeyLastID:  []byte(`3`),
		service.KeyPanels:  []byte(`null`),
	}}
	c, err := service.NewCatalogService(kv, logx.Nop()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := c.Tasks[0]
	if got.LapInterval != 1 || got.GrowthFactor != 0 || got.MaxOccurrences != 0 || got.CategoryID != "cat-5" {
		t.Fatalf("legacy defaults not applied: %+v", got)
	}
	if c.LastID != 7 {
		t.Fatalf("lastId must not trail existing ids, got %d", c.LastID)
	}
	if c.Panels == nil {
		t.Fatalf("panels must be usable after a null value")
	}
}

func TestUpdatePersistsAllKeys(t *testing.T) {
	t.Parallel()
	kv := &memoryKV{values: map[string][]byte{}}
	svc := service.NewCatalogService(kv, logx.Nop())
	_, err := svc.Update(context.Background(), func(c *domain.Catalog) error {
		c.SeedDemo()
		c.SetPanelCollapsed("runner", true)
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if string(kv.values[service.KeyLapList]) != "[1,2,3,4]" || string(kv.values[service.KeyLastID]) != "4" {
		t.Fatalf("unexpected stored values %q %q", kv.values[service.KeyLapList], kv.values[service.KeyLastID])
	}
	if string(kv.values[service.KeyPanels]) != `{"runner":true}` {
		t.Fatalf("unexpected panels %q", kv.values[service.KeyPanels])
	}

	c, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(c.Tasks) != 4 || c.Tasks[2].Title != "Breathe" || c.Tasks[2].MaxOccurrences != 3 {
		t.Fatalf("unexpected reloaded tasks %+v", c.Tasks)
	}
}

func TestUpdateDoesNotSaveOnError(t *testing.T) {
	t.Parallel()
	kv := &memoryKV{values: map[string][]byte{}}
	svc := service.NewCatalogService(kv, logx.Nop())
	boom := errors.New("boom")
	if _, err := svc.Update(context.Background(), func(c *domain.Catalog) error {
		c.SeedDemo()
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if len(kv.values) != 0 {
		t.Fatalf("nothing must be written")
	}
	kv.err = errors.New("disk full")
	if _, err := svc.Update(context.Background(), func(*domain.Catalog) error { return nil }); err == nil {
		t.Fatalf("expected store error")
	}
}
