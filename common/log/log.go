package log

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	// InitLog 之前也能用：默认只输出 warn 以上，避免库调用方被刷屏
	l := log.New(os.Stderr)
	l.SetLevel(log.WarnLevel)
	logger.Store(l)
}

// InitLog 输出到 stderr，stdout 留给计分结果
func InitLog(appName string, logLevel string) {
	InitLogTo(os.Stderr, appName, logLevel)
}

func InitLogTo(w io.Writer, appName string, logLevel string) {
	l := log.New(w)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetReportCaller(true)
	// 调用者信息要跳过本包的一层封装
	l.SetCallerOffset(1)
	l.SetLevel(ParseLevel(logLevel))
	logger.Store(l)
}

// ParseLevel 默认为 info 级别
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel 配置热更新时调整级别
func SetLevel(logLevel string) {
	logger.Load().SetLevel(ParseLevel(logLevel))
}

// With 带键值对的子 logger
func With(keyvals ...any) *log.Logger {
	return logger.Load().With(keyvals...)
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Load().Fatal(format)
	} else {
		logger.Load().Fatalf(format, args...)
	}
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Load().Info(format)
	} else {
		logger.Load().Infof(format, args...)
	}
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Load().Warn(format)
	} else {
		logger.Load().Warnf(format, args...)
	}
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Load().Error(format)
	} else {
		logger.Load().Errorf(format, args...)
	}
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Load().Debug(format)
	} else {
		logger.Load().Debugf(format, args...)
	}
}
