package audit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Popolzen/url2"
	"github.com/Popolzen/url2/internal/logger"
)

// HTTPObserver наблюдатель, отправляющий события на удалённый сервер.
// К адресу добавляется параметр action с типом события.
type HTTPObserver struct {
	endpoint *url2.URL
	client   *http.Client
}

// NewHTTPObserver создаёт наблюдателя для отправки на HTTP endpoint
func NewHTTPObserver(endpoint string) (*HTTPObserver, error) {
	u, err := url2.TryParse(endpoint)
	if err != nil {
		return nil, err
	}
	return &HTTPObserver{
		endpoint: u,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

// target адрес для конкретного события
func (h *HTTPObserver) target(action Action) string {
	u := h.endpoint.Clone()
	q := u.QueryUnique()
	q.SetPair("action", string(action))
	q.Close()
	return u.String()
}

// Notify отправляет событие на удалённый сервер
func (h *HTTPObserver) Notify(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Log().Errorw("audit http: ошибка сериализации", "error", err)
		return
	}

	resp, err := h.client.Post(h.target(event.Action), "application/json", bytes.NewReader(data))
	if err != nil {
		logger.Log().Errorw("audit http: ошибка отправки", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		logger.Log().Warnw("audit http: сервер вернул ошибку", "status", resp.StatusCode)
	}
}

// Close для HTTP ничего не делает
func (h *HTTPObserver) Close() error {
	return nil
}
