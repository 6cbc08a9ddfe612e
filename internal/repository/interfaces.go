package repository

import "github.com/Popolzen/url2/internal/model"

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

// PresetRepository хранилище пресетов
type PresetRepository interface {
	Store(preset model.Preset) error
	Get(id string) (model.Preset, error)
	List() ([]model.Preset, error)
	Close() error
}
