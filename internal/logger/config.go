package logger

import "os"

// LogConfig cấu hình hệ thống logging.
type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text hoặc json
	Output     string // stdout, file, both
	LogPath    string // thư mục chứa file log
	AppFile    string // file log chính
	ErrorFile  string // file log lỗi
	AuditFile  string // file log audit (ghi nhận phiếu giao ca)
	MaxSize    int    // MB mỗi file trước khi rotate
	MaxBackups int    // số file cũ giữ lại
	MaxAge     int    // số ngày giữ file cũ
	Compress   bool   // nén file cũ
}

// DefaultConfig trả về cấu hình mặc định theo GO_ENV.
// production dùng json + file, còn lại dùng text + stdout để dev đọc trực tiếp.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{
		Level:      "info",
		Format:     "text",
		Output:     "both",
		LogPath:    "logs",
		AppFile:    "app.log",
		ErrorFile:  "error.log",
		AuditFile:  "audit.log",
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	if os.Getenv("GO_ENV") == "production" {
		cfg.Format = "json"
		cfg.Output = "file"
	}
	if lv := os.Getenv("LOG_LEVEL"); lv != "" {
		cfg.Level = lv
	}

	return cfg
}
