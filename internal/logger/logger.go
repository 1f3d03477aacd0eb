// Package logger cung cấp các logger đặt tên (app, audit, error) trên nền
// logrus, ghi file có rotation qua lumberjack. Logger được tạo lazy và cache.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex

	config *LogConfig

	// rootDir là gốc project, dùng để resolve LogPath tương đối.
	rootDir string
)

// Init khởi tạo hệ thống logging. cfg nil dùng DefaultConfig.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := initRootDir(); err != nil {
		return fmt.Errorf("không xác định được thư mục gốc project: %w", err)
	}

	if config.Output == "file" || config.Output == "both" {
		if err := os.MkdirAll(logPath(), 0755); err != nil {
			return fmt.Errorf("không tạo được thư mục logs: %w", err)
		}
	}

	return nil
}

// initRootDir tìm gốc project: LOG_ROOT_DIR, rồi đi lên từ working directory
// tới khi gặp thư mục config hoặc logs.
func initRootDir() error {
	if rootDir != "" {
		return nil
	}

	if env := os.Getenv("LOG_ROOT_DIR"); env != "" {
		if resolved, err := filepath.EvalSymlinks(env); err == nil {
			rootDir = resolved
		} else {
			rootDir = env
		}
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	dir := wd
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(dir, "config")); err == nil {
			rootDir = dir
			return nil
		}
		if _, err := os.Stat(filepath.Join(dir, "logs")); err == nil {
			rootDir = dir
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	rootDir = wd
	return nil
}

func logPath() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

// GetLogger trả về logger theo tên (app, audit, error), tạo mới nếu chưa có.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("khởi tạo logger thất bại: %v", err))
		}
	}

	if lg, ok := loggers[name]; ok {
		return lg
	}

	lg := createLogger(name)
	loggers[name] = lg
	return lg
}

func createLogger(name string) *logrus.Logger {
	lg := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	lg.SetLevel(level)

	if config.Format == "json" {
		lg.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		lg.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}
	if len(writers) > 0 {
		lg.SetOutput(io.MultiWriter(writers...))
	}

	return lg
}

func logFilePath(name string) string {
	var filename string
	switch name {
	case "app":
		filename = config.AppFile
	case "error":
		filename = config.ErrorFile
	case "audit":
		filename = config.AuditFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(logPath(), filename)
}

// GetAppLogger trả về logger chính của ứng dụng.
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetErrorLogger trả về logger cho lỗi.
func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}

// GetAuditLogger trả về logger audit, ghi nhận mọi lần chốt phiếu giao ca.
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}
