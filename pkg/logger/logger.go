package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер симуляции. До Init пишет в stderr с уровнем info,
// чтобы библиотечный код можно было вызывать без инициализации.
var Log = logrus.New()

// Init настраивает логгер из окружения (LOG_LEVEL, LOG_FORMAT).
// Используется в тестах и как запасной вариант, если конфиг не загружен.
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure применяет уровень и формат явно (из конфигурации сервера).
// Некорректный уровень тихо заменяется на info.
func Configure(levelName, format string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(levelName))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" - для продакшена и сбора логов, "text" - для разработки
	if strings.EqualFold(format, "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   out == os.Stdout,
		})
	}

	Log.SetOutput(out)
}

// WithComponent - короткая запись для полей компонента
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
