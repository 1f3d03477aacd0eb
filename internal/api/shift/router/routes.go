// Package router đăng ký các route thuộc domain Shift: home, insert, search
// và CRUD đọc cho từng collection phiếu giao ca.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "github.com/thinklm/ma-shift-change/internal/api/router"
	shifthdl "github.com/thinklm/ma-shift-change/internal/api/shift/handler"
	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
)

// Register đăng ký tất cả route shift lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	shiftHandler, err := shifthdl.NewShiftHandler()
	if err != nil {
		return fmt.Errorf("create shift handler: %w", err)
	}

	apirouter.RegisterRouteWithMiddleware(v1, "/shift-report", nil, func(g fiber.Router) {
		g.Get("/home", shiftHandler.HandleHome)
		g.Post("/insert", shiftHandler.HandleInsert)
		g.Get("/search", shiftHandler.HandleSearch)
	})

	// CRUD đọc cho từng collection (ghi luôn đi qua /shift-report/insert)
	crudPrefixes := map[models.RecordGroup]string{
		models.GroupETA:  "/shift-eta",
		models.GroupETEI: "/shift-etei",
		models.GroupOBS:  "/shift-obs",
	}
	for _, group := range models.AllGroups() {
		groupHandler, err := shifthdl.NewShiftGroupHandler(group)
		if err != nil {
			return fmt.Errorf("create %s collection handler: %w", group, err)
		}
		r.RegisterCRUDRoutes(v1, crudPrefixes[group], groupHandler, apirouter.ReadOnlyConfig)
	}

	return nil
}
