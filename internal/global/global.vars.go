// Package global giữ các biến dùng chung toàn ứng dụng, được khởi tạo
// một lần trong cmd/server/init.go trước khi server nhận request.
package global

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thinklm/ma-shift-change/config"
	shiftmodels "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/registry"
)

// ColNames tên các collection phiếu giao ca, một collection cho mỗi nhóm.
type ColNames struct {
	ShiftEta  string
	ShiftEtei string
	ShiftObs  string
}

var (
	// Validate instance validator dùng chung, khởi tạo qua InitValidator.
	Validate *validator.Validate

	// MongoDB_Session client MongoDB dùng chung. Nil khi store chưa kết nối
	// được lúc khởi động (chế độ degraded).
	MongoDB_Session *mongo.Client

	// ServerConfig cấu hình ứng dụng đã parse từ env.
	ServerConfig *config.Configuration

	// MongoDB_ColNames tên các collection của service.
	MongoDB_ColNames = ColNames{
		ShiftEta:  "shift_eta_closures",
		ShiftEtei: "shift_etei_closures",
		ShiftObs:  "shift_obs_closures",
	}

	// RegistryCollections registry các collection handle theo tên.
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()

	// Timezone múi giờ vận hành của nhà máy (TIMEZONE trong env).
	Timezone *time.Location

	// ShiftFields manifest các field theo nhóm, load từ SHIFT_FIELDS_PATH.
	ShiftFields *shiftmodels.FieldManifest
)

// ColNameOf trả về tên collection theo nhóm bản ghi, "" nếu nhóm không hợp lệ.
func ColNameOf(group shiftmodels.RecordGroup) string {
	switch group {
	case shiftmodels.GroupETA:
		return MongoDB_ColNames.ShiftEta
	case shiftmodels.GroupETEI:
		return MongoDB_ColNames.ShiftEtei
	case shiftmodels.GroupOBS:
		return MongoDB_ColNames.ShiftObs
	default:
		return ""
	}
}
