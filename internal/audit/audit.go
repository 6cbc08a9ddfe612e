package audit

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Popolzen/url2"
)

// Action тип действия аудита
type Action string

const (
	ActionRewrite Action = "rewrite"
	ActionApply   Action = "apply"
)

// Event структура события аудита
type Event struct {
	Timestamp int64  `json:"ts"`
	Action    Action `json:"action"`
	PresetID  string   `json:"preset_id,omitempty"`
	URL       string   `json:"url"`
	Keys      []string `json:"keys,omitempty"`
}

// NewEvent создаёт новое событие аудита
func NewEvent(action Action, presetID, url string) Event {
	return Event{
		Timestamp: time.Now().Unix(),
		Action:    action,
		PresetID:  presetID,
		URL:       url,
	}
}

// WithKeys добавляет в событие ключи query-строки, которые различаются
// между исходным URL и результатом
func (e Event) WithKeys(before, after string) Event {
	e.Keys = ChangedKeys(before, after)
	return e
}

// ChangedKeys возвращает по возрастанию ключи, которые добавлены, удалены
// или получили другое значение. Повторы ключа сравниваются по последнему
// значению. Если один из URL не разбирается, возвращает nil.
func ChangedKeys(before, after string) []string {
	from, err := queryOf(before)
	if err != nil {
		return nil
	}
	to, err := queryOf(after)
	if err != nil {
		return nil
	}

	var keys []string
	for k, v := range to {
		if old, ok := from[k]; !ok || old != v {
			keys = append(keys, k)
		}
	}
	for k := range from {
		if _, ok := to[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func queryOf(raw string) (map[string]string, error) {
	u, err := url2.TryParse(raw)
	if err != nil {
		return nil, err
	}
	q := u.QueryUnique()
	defer q.Close()
	return maps.Clone(q.Map()), nil
}

type Observer interface {
	Notify(event Event)
	Close() error
}

type Publisher struct {
	mu          sync.Mutex
	subscribers []Observer
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Subscribe(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers = append(p.subscribers, o)
}

func (p *Publisher) Publish(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.subscribers {
		s.Notify(event)
	}
}

// Close закрывает всех наблюдателей
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, obs := range p.subscribers {
		if err := obs.Close(); err != nil {
			return err
		}
	}
	return nil
}
