package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Popolzen/url2/internal/audit"
	"github.com/Popolzen/url2/internal/model"
	"github.com/Popolzen/url2/internal/repository/memory"
	"github.com/Popolzen/url2/internal/repository/mocks"
	"github.com/Popolzen/url2/internal/service/rewriter"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingObserver собирает события аудита
type recordingObserver struct {
	events []audit.Event
}

func (r *recordingObserver) Notify(event audit.Event) {
	r.events = append(r.events, event)
}

func (r *recordingObserver) Close() error {
	return nil
}

// Вспомогательная функция для создания роутера со всеми маршрутами
func setupTestRouter(urlService rewriter.URLService) (*gin.Engine, *recordingObserver) {
	gin.SetMode(gin.TestMode)
	pub := audit.NewPublisher()
	obs := &recordingObserver{}
	pub.Subscribe(obs)

	router := gin.New()
	router.POST("/api/rewrite", RewriteHandler(urlService, pub))
	router.GET("/api/lookup", LookupHandler(urlService))
	router.POST("/api/presets", CreatePresetHandler(urlService))
	router.GET("/api/presets", ListPresetsHandler(urlService))
	router.GET("/api/presets/:id", GetPresetHandler(urlService))
	router.POST("/api/presets/:id/apply", ApplyPresetHandler(urlService, pub))

	return router, obs
}

func doRequest(router *gin.Engine, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestRewriteHandler(t *testing.T) {
	type want struct {
		statusCode int
		result     string
		keys       []string
	}
	tests := []struct {
		name string
		body string
		want want
	}{
		{
			name: "Добавление и удаление",
			body: `{"url":"scheme:?a=1&b=2","set":{"c":"3"},"remove":["a","b"]}`,
			want: want{statusCode: http.StatusOK, result: "scheme:?c=3", keys: []string{"a", "b", "c"}},
		},
		{
			name: "Повторы схлопываются",
			body: `{"url":"https://example.com/?a=1&a=2"}`,
			want: want{statusCode: http.StatusOK, result: "https://example.com/?a=2"},
		},
		{
			name: "Относительный URL",
			body: `{"url":"/only/path"}`,
			want: want{statusCode: http.StatusBadRequest},
		},
		{
			name: "Битый JSON",
			body: `{"url":`,
			want: want{statusCode: http.StatusBadRequest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, obs := setupTestRouter(rewriter.NewURLService(memory.NewPresetRepository()))

			w := doRequest(router, http.MethodPost, "/api/rewrite", strings.NewReader(tt.body))

			assert.Equal(t, tt.want.statusCode, w.Code)
			if tt.want.statusCode != http.StatusOK {
				assert.Empty(t, obs.events)
				return
			}

			var res model.Result
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.want.result, res.Result)

			require.Len(t, obs.events, 1)
			assert.Equal(t, audit.ActionRewrite, obs.events[0].Action)
			assert.Equal(t, tt.want.result, obs.events[0].URL)
			assert.Equal(t, tt.want.keys, obs.events[0].Keys)
		})
	}
}

func TestLookupHandler(t *testing.T) {
	router, _ := setupTestRouter(rewriter.NewURLService(memory.NewPresetRepository()))

	q := url.Values{"url": {"none:?a=1&a=2"}, "key": {"a"}}
	w := doRequest(router, http.MethodGet, "/api/lookup?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res model.LookupResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.LookupResult{Key: "a", Value: "2", Found: true}, res)

	q.Set("key", "missing")
	w = doRequest(router, http.MethodGet, "/api/lookup?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Found)

	q.Del("key")
	w = doRequest(router, http.MethodGet, "/api/lookup?"+q.Encode(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/lookup?key=a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPresetLifecycle(t *testing.T) {
	router, obs := setupTestRouter(rewriter.NewURLService(memory.NewPresetRepository()))

	// создаём
	w := doRequest(router, http.MethodPost, "/api/presets", jsonBody(t, model.PresetRequest{
		Name:   "utm",
		Params: map[string]string{"utm_source": "mail"},
	}))
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Preset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// повтор имени
	w = doRequest(router, http.MethodPost, "/api/presets", jsonBody(t, model.PresetRequest{Name: "utm"}))
	assert.Equal(t, http.StatusConflict, w.Code)

	// получаем
	w = doRequest(router, http.MethodGet, "/api/presets/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Preset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	// список
	w = doRequest(router, http.MethodGet, "/api/presets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Preset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// применяем
	w = doRequest(router, http.MethodPost, "/api/presets/"+created.ID+"/apply",
		strings.NewReader("https://example.com/landing?utm_source=old&x=1&x=2\n"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))

	result, err := url.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, url.Values{"utm_source": {"mail"}, "x": {"2"}}, result.Query())

	require.Len(t, obs.events, 1)
	assert.Equal(t, audit.ActionApply, obs.events[0].Action)
	assert.Equal(t, created.ID, obs.events[0].PresetID)
	assert.Equal(t, []string{"utm_source"}, obs.events[0].Keys)
}

func TestCreatePresetHandler_Invalid(t *testing.T) {
	router, _ := setupTestRouter(rewriter.NewURLService(memory.NewPresetRepository()))

	w := doRequest(router, http.MethodPost, "/api/presets", strings.NewReader(`{"name":""}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/presets", strings.NewReader(`not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPresetHandler_NotFound(t *testing.T) {
	router, _ := setupTestRouter(rewriter.NewURLService(memory.NewPresetRepository()))

	w := doRequest(router, http.MethodGet, "/api/presets/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPost, "/api/presets/missing/apply", strings.NewReader("https://example.com/"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyPresetHandler_InvalidURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPresetRepository(ctrl)
	repo.EXPECT().Get("id-1").Return(model.Preset{ID: "id-1", Name: "utm"}, nil)

	router, obs := setupTestRouter(rewriter.NewURLService(repo))

	w := doRequest(router, http.MethodPost, "/api/presets/id-1/apply", strings.NewReader(""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "relative URL without a base")
	assert.Empty(t, obs.events)
}

func TestListPresetsHandler_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPresetRepository(ctrl)
	repo.EXPECT().List().Return(nil, errors.New("db down"))

	router, _ := setupTestRouter(rewriter.NewURLService(repo))

	w := doRequest(router, http.MethodGet, "/api/presets", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingDB() error {
	return f.err
}

func TestPingHandler(t *testing.T) {
	tests := []struct {
		name   string
		pinger Pinger
		want   int
	}{
		{name: "Без БД", pinger: nil, want: http.StatusOK},
		{name: "БД доступна", pinger: fakePinger{}, want: http.StatusOK},
		{name: "БД недоступна", pinger: fakePinger{err: errors.New("down")}, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/ping", PingHandler(tt.pinger))

			w := doRequest(router, http.MethodGet, "/ping", nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
