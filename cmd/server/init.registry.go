package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thinklm/ma-shift-change/config"
	"github.com/thinklm/ma-shift-change/internal/global"
)

// InitRegistry đăng ký các collection phiếu giao ca vào registry toàn cục.
// Store degraded (session nil) thì bỏ qua: route nghiệp vụ sẽ không đăng ký
// được và server chỉ còn /health.
func InitRegistry() {
	if global.MongoDB_Session == nil {
		logrus.Warn("Bỏ qua đăng ký collection: document store chưa kết nối")
		return
	}

	if err := InitCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections đăng ký các collection MongoDB của service.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.ShiftEta,
		global.MongoDB_ColNames.ShiftEtei,
		global.MongoDB_ColNames.ShiftObs,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Warnf("Collection %s already registered", name)
		}
	}

	return nil
}
