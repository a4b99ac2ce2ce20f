package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New 创建日志实例，w 为空时输出到 stderr，无法识别的级别按 info 处理。
func New(levelStr string, w io.Writer) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if w == nil {
		w = os.Stderr
	}
	log.SetOutput(w)
	return log
}

// Discard 返回不输出任何内容的日志实例，供未注入日志的组件使用。
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
