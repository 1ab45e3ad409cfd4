package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// Init настраивает общий логгер: stdout + ротация файла через lumberjack.
func Init() {
	logFile := &lumberjack.Logger{
		Filename:   "logs/server.log",
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	Logger.SetOutput(io.MultiWriter(os.Stdout, logFile))
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Logger.SetLevel(logrus.InfoLevel)
}
