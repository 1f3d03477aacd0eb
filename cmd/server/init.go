package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thinklm/ma-shift-change/config"
	shiftmodels "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/database"
	"github.com/thinklm/ma-shift-change/internal/global"
	"github.com/thinklm/ma-shift-change/internal/logger"
)

// InitGlobal khởi tạo các biến toàn cục theo thứ tự phụ thuộc.
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initTimezone()         // Load múi giờ vận hành
	initManifest()         // Load manifest field phiếu giao ca
	initDatabase_MongoDB() // Kết nối document store (không fatal khi lỗi)
}

// Hàm khởi tạo validator với các custom validator của domain
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initTimezone load múi giờ vận hành của nhà máy. Múi giờ lỗi rơi về UTC:
// mọi tính toán "ngày lịch" của window phụ thuộc biến này.
func initTimezone() {
	loc, err := time.LoadLocation(global.ServerConfig.Timezone)
	if err != nil {
		logrus.Errorf("Múi giờ %q không hợp lệ, dùng UTC: %v", global.ServerConfig.Timezone, err)
		loc = time.UTC
	}
	global.Timezone = loc
	logrus.Infof("Operating timezone: %s", loc)
}

// initManifest load manifest field từ file JSON. Manifest hỏng là lỗi cấu
// hình, không chạy tiếp được.
func initManifest() {
	path := config.ResolveProjectPath(global.ServerConfig.ManifestPath)
	manifest, err := shiftmodels.LoadFieldManifest(path)
	if err != nil {
		logrus.Fatalf("Load manifest field thất bại: %v", err)
	}
	global.ShiftFields = manifest
	logrus.Infof("Loaded shift field manifest: %s", path)
}

// initDatabase_MongoDB kết nối document store, tạo collection và index.
// Kết nối thất bại KHÔNG dừng app: server vẫn lên ở chế độ degraded, các
// route nghiệp vụ sẽ báo lỗi từng request, /health báo disconnected.
func initDatabase_MongoDB() {
	session, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logger.GetErrorLogger().WithError(err).Error("Không kết nối được document store, server chạy degraded")
		return
	}
	global.MongoDB_Session = session
	logrus.Info("Connected to MongoDB")

	colNames := []string{
		global.MongoDB_ColNames.ShiftEta,
		global.MongoDB_ColNames.ShiftEtei,
		global.MongoDB_ColNames.ShiftObs,
	}

	db := session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.EnsureShiftIndexes(context.TODO(), db, colNames); err != nil {
		// Index lỗi không chặn việc phục vụ request, chỉ làm query chậm
		logger.GetErrorLogger().WithError(err).Error("Tạo index phiếu giao ca thất bại")
	} else {
		logrus.Info("Ensured shift collection indexes")
	}
}
