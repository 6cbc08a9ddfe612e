package rewriter

import (
	"fmt"
	"strings"

	"github.com/Popolzen/url2"
	"github.com/Popolzen/url2/internal/model"
	"github.com/Popolzen/url2/internal/repository"
	"github.com/google/uuid"
)

// URLService правит query-строки URL и хранит пресеты параметров
type URLService struct {
	repo repository.PresetRepository
}

func NewURLService(repo repository.PresetRepository) URLService {
	return URLService{repo: repo}
}

// Rewrite удаляет ключи remove, затем выставляет set.
// Повторяющиеся ключи исходной строки схлопываются, остаётся последнее значение.
func (s URLService) Rewrite(rawURL string, set map[string]string, remove []string) (string, error) {
	u, err := url2.TryParse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.QueryUnique()
	for _, key := range remove {
		q.Remove(key)
	}
	for key, value := range set {
		q.SetPair(key, value)
	}
	q.Close()

	return u.String(), nil
}

// Lookup возвращает значение ключа query-строки
func (s URLService) Lookup(rawURL, key string) (string, bool, error) {
	u, err := url2.TryParse(rawURL)
	if err != nil {
		return "", false, err
	}

	value, found := u.QueryUniqueGet(key)
	return value, found, nil
}

// CreatePreset проверяет и сохраняет новый пресет
func (s URLService) CreatePreset(name string, params map[string]string) (model.Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Preset{}, fmt.Errorf("%w: пустое имя", model.ErrInvalidPreset)
	}
	for key := range params {
		if key == "" {
			return model.Preset{}, fmt.Errorf("%w: пустой ключ параметра", model.ErrInvalidPreset)
		}
	}

	preset := model.Preset{
		ID:     uuid.New().String(),
		Name:   name,
		Params: params,
	}
	if preset.Params == nil {
		preset.Params = map[string]string{}
	}

	if err := s.repo.Store(preset); err != nil {
		return model.Preset{}, err
	}
	return preset, nil
}

func (s URLService) GetPreset(id string) (model.Preset, error) {
	return s.repo.Get(id)
}

func (s URLService) ListPresets() ([]model.Preset, error) {
	return s.repo.List()
}

// ApplyPreset выставляет в query-строке параметры пресета
func (s URLService) ApplyPreset(rawURL, id string) (string, error) {
	preset, err := s.repo.Get(id)
	if err != nil {
		return "", err
	}
	return s.Rewrite(rawURL, preset.Params, nil)
}
