package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер. Каждая запись получает поле app с именем сервиса.
func New(logLevel, appName string) *logrus.Logger {
	return NewWithOutput(logLevel, appName, os.Stdout)
}

// NewWithOutput - то же, что New, но с произвольным приемником записей
func NewWithOutput(logLevel, appName string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)

	if appName != "" {
		log.AddHook(appHook{name: appName})
	}
	return log
}

type appHook struct {
	name string
}

func (h appHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h appHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["app"]; !ok {
		entry.Data["app"] = h.name
	}
	return nil
}
