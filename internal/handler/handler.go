package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Popolzen/url2"
	"github.com/Popolzen/url2/internal/audit"
	"github.com/Popolzen/url2/internal/logger"
	"github.com/Popolzen/url2/internal/model"
	"github.com/Popolzen/url2/internal/service/rewriter"
	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	PingDB() error
}

// RewriteHandler правит query-строку по JSON-запросу
func RewriteHandler(urlService rewriter.URLService, auditPub *audit.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.RewriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, "Неправильное тело запроса")
			return
		}

		result, err := urlService.Rewrite(req.URL, req.Set, req.Remove)
		if err != nil {
			writeError(c, err)
			return
		}

		auditPub.Publish(audit.NewEvent(audit.ActionRewrite, "", result).WithKeys(req.URL, result))
		c.JSON(http.StatusOK, model.Result{Result: result})
	}
}

// LookupHandler возвращает значение ключа query-строки
func LookupHandler(urlService rewriter.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawURL := c.Query("url")
		key := c.Query("key")
		if key == "" {
			c.String(http.StatusBadRequest, "Не указан ключ")
			return
		}

		value, found, err := urlService.Lookup(rawURL, key)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, model.LookupResult{Key: key, Value: value, Found: found})
	}
}

// CreatePresetHandler создаёт пресет
func CreatePresetHandler(urlService rewriter.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.PresetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, "Неправильное тело запроса")
			return
		}

		preset, err := urlService.CreatePreset(req.Name, req.Params)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, preset)
	}
}

// ListPresetsHandler возвращает все пресеты
func ListPresetsHandler(urlService rewriter.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		presets, err := urlService.ListPresets()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, presets)
	}
}

// GetPresetHandler возвращает пресет по id
func GetPresetHandler(urlService rewriter.URLService) gin.HandlerFunc {
	return func(c *gin.Context) {
		preset, err := urlService.GetPreset(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, preset)
	}
}

// ApplyPresetHandler применяет пресет к URL из тела запроса
func ApplyPresetHandler(urlService rewriter.URLService, auditPub *audit.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusBadRequest, "Неправильное тело запроса")
			return
		}

		id := c.Param("id")
		rawURL := strings.TrimSpace(string(body))
		result, err := urlService.ApplyPreset(rawURL, id)
		if err != nil {
			writeError(c, err)
			return
		}

		auditPub.Publish(audit.NewEvent(audit.ActionApply, id, result).WithKeys(rawURL, result))
		c.Header("Content-Type", "text/plain")
		c.String(http.StatusOK, "%s", result)
	}
}

// PingHandler проверяет подключение к БД, без БД всегда отвечает 200
func PingHandler(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			if err := p.PingDB(); err != nil {
				logger.Log().Errorw("ping: БД недоступна", "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
		}
		c.Status(http.StatusOK)
	}
}

// writeError переводит ошибку сервиса в HTTP-статус
func writeError(c *gin.Context, err error) {
	var parseErr *url2.Error
	switch {
	case errors.As(err, &parseErr):
		c.String(http.StatusBadRequest, "Некорректный URL: %v", err)
	case errors.Is(err, model.ErrInvalidPreset):
		c.String(http.StatusBadRequest, "%s", err.Error())
	case errors.Is(err, model.ErrPresetNotFound):
		c.String(http.StatusNotFound, "Не нашли пресет")
	case errors.Is(err, model.ErrPresetExists):
		c.String(http.StatusConflict, "Пресет с таким именем уже есть")
	default:
		logger.Log().Errorw("внутренняя ошибка", "error", err)
		c.String(http.StatusInternalServerError, "Внутренняя ошибка")
	}
}
