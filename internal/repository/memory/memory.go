package memory

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/Popolzen/url2/internal/model"
)

type PresetRepository struct {
	mu      sync.RWMutex
	presets map[string]model.Preset
}

func NewPresetRepository() *PresetRepository {
	return &PresetRepository{
		presets: map[string]model.Preset{},
	}
}

// Get получает пресет по id
func (r *PresetRepository) Get(id string) (model.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, exists := r.presets[id]; exists {
		return clonePreset(p), nil
	}
	return model.Preset{}, model.ErrPresetNotFound
}

// Store сохраняет пресет, имя должно быть уникальным
func (r *PresetRepository) Store(p model.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.presets {
		if existing.Name == p.Name && id != p.ID {
			return model.ErrPresetExists
		}
	}
	r.presets[p.ID] = clonePreset(p)
	return nil
}

// List возвращает пресеты по имени
func (r *PresetRepository) List() ([]model.Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	presets := make([]model.Preset, 0, len(r.presets))
	for _, p := range r.presets {
		presets = append(presets, clonePreset(p))
	}
	slices.SortFunc(presets, func(a, b model.Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return presets, nil
}

func (r *PresetRepository) Close() error {
	return nil
}

func clonePreset(p model.Preset) model.Preset {
	p.Params = maps.Clone(p.Params)
	return p
}
