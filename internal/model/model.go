package model

import "errors"

// RewriteRequest запрос на правку query-строки
type RewriteRequest struct {
	URL    string            `json:"url"`
	Set    map[string]string `json:"set"`
	Remove []string          `json:"remove"`
}

type Result struct {
	Result string `json:"result"`
}

// LookupResult значение ключа query-строки
type LookupResult struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// Preset именованный набор параметров query-строки
type Preset struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

// PresetRequest запрос на создание пресета
type PresetRequest struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrPresetExists   = errors.New("preset with this name already exists")
	ErrInvalidPreset  = errors.New("invalid preset")
)
