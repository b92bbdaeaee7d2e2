package lib

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger builds the process logger, writing to STDOUT or a configured log
// file. The file name gets a date suffix so restarts do not clobber earlier
// logs.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout, // default to STDOUT
		lecho.WithLevel(log.INFO),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := loggingFile(logFilePath)
		if err != nil {
			logger.Errorf("failed to create logging file: %v", err)
		} else {
			logger.SetOutput(file)
		}
	}
	return logger
}

func loggingFile(path string) (*os.File, error) {
	extension := filepath.Ext(path)
	if extension != "" {
		path = strings.Replace(path, extension, time.Now().Format("-2006-01-02")+extension, 1)
	} else {
		path = path + time.Now().Format("-2006-01-02") + ".log"
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
}
