package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Popolzen/url2/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PresetRepository struct {
	DB *sql.DB
}

func NewPresetRepository(db *sql.DB) *PresetRepository {
	return &PresetRepository{
		DB: db,
	}
}

// Get получает пресет по id. Id, не являющийся UUID, тоже не найден.
func (r *PresetRepository) Get(id string) (model.Preset, error) {
	query := `SELECT id, name, params FROM presets WHERE id = $1`

	p, err := scanPreset(r.DB.QueryRow(query, id))
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Preset{}, model.ErrPresetNotFound
		case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation:
			return model.Preset{}, model.ErrPresetNotFound
		}
		return model.Preset{}, fmt.Errorf("ошибка при получении пресета: %w", err)
	}

	return p, nil
}

// Store сохраняет пресет, при совпадении id обновляет его
func (r *PresetRepository) Store(p model.Preset) error {
	query := `
    INSERT INTO presets (id, name, params, created_at)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (id)
    DO UPDATE SET
        name = EXCLUDED.name,
        params = EXCLUDED.params
`

	params, err := json.Marshal(p.Params)
	if err != nil {
		return fmt.Errorf("ошибка сериализации параметров: %w", err)
	}

	_, err = r.DB.Exec(query, p.ID, p.Name, string(params), time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.ErrPresetExists
		}
		return fmt.Errorf("ошибка при сохранении пресета: %w", err)
	}

	return nil
}

// List возвращает пресеты по имени
func (r *PresetRepository) List() ([]model.Preset, error) {
	rows, err := r.DB.Query(`SELECT id, name, params FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пресетов: %w", err)
	}
	defer rows.Close()

	presets := []model.Preset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return presets, nil
}

func (r *PresetRepository) Close() error {
	return r.DB.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(s scanner) (model.Preset, error) {
	var (
		p      model.Preset
		params []byte
	)
	if err := s.Scan(&p.ID, &p.Name, &params); err != nil {
		return model.Preset{}, err
	}
	if err := json.Unmarshal(params, &p.Params); err != nil {
		return model.Preset{}, fmt.Errorf("ошибка десериализации параметров: %w", err)
	}
	return p, nil
}
