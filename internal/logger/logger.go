package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar = zap.NewNop().Sugar()

// Init инициализирует zap логгер с уровнем level ("debug", "info", ...)
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	config := zap.NewProductionConfig()

	// Настройка формата времени
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = lvl

	logger, err := config.Build()
	if err != nil {
		return err
	}

	sugar = logger.Sugar()
	return nil
}

// Log возвращает общий логгер. До Init — пустой логгер.
func Log() *zap.SugaredLogger {
	return sugar
}

// RequestResponseLogger — middleware-логер для входящих HTTP-запросов.
func RequestResponseLogger() gin.HandlerFunc {
	return func(c *gin.Context) {

		start := time.Now()
		uri := c.Request.RequestURI
		method := c.Request.Method

		c.Next()

		sugar.Infoln(
			"uri", uri,
			"method", method,
			"duration", time.Since(start),
			"status", c.Writer.Status(),
			"size", c.Writer.Size(),
		)
	}
}

func Close() {
	sugar.Sync()
}
