package filestorage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Popolzen/url2/internal/model"
	"github.com/Popolzen/url2/internal/repository/memory"
	"github.com/google/uuid"
)

// PresetRepository держит пресеты в памяти и сбрасывает их в JSON-файл
type PresetRepository struct {
	*memory.PresetRepository
	mu   sync.Mutex
	path string
}

func NewPresetRepository(path string) *PresetRepository {
	repo := &PresetRepository{
		PresetRepository: memory.NewPresetRepository(),
		path:             path,
	}

	if err := repo.loadPresets(); err != nil {
		return &PresetRepository{
			PresetRepository: memory.NewPresetRepository(),
			path:             path,
		}
	}
	return repo
}

// Store сохраняет пресет и перезаписывает файл
func (r *PresetRepository) Store(p model.Preset) error {
	if err := r.PresetRepository.Store(p); err != nil {
		return err
	}
	return r.SavePresetsToFile()
}

// Close сбрасывает пресеты в файл
func (r *PresetRepository) Close() error {
	return r.SavePresetsToFile()
}

// loadPresets - загружает данные из файла в память.
func (r *PresetRepository) loadPresets() error {
	var presets []model.Preset

	file, err := os.OpenFile(r.path, os.O_RDONLY, 0644)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &presets); err != nil {
		return fmt.Errorf("ошибка десериализации JSON: %w", err)
	}
	for _, p := range presets {
		// записи, сохранённые вручную, могут быть без id
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		if err := r.PresetRepository.Store(p); err != nil {
			return fmt.Errorf("пресет %q: %w", p.Name, err)
		}
	}

	return nil
}

// SavePresetsToFile запись пресетов в файл
func (r *PresetRepository) SavePresetsToFile() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	presets, err := r.PresetRepository.List()
	if err != nil {
		return err
	}

	data, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("ошибка сериализации JSON: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла: %w", err)
	}

	return nil
}
