// Package database - index cho các collection phiếu giao ca.
// Truy vấn window luôn lọc theo (date, endedshift) nên mỗi collection cần
// compound index tương ứng; index này cũng phục vụ sort theo date.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureShiftIndexes tạo compound index (date asc, endedshift asc) cho từng
// collection phiếu giao ca. Index đã tồn tại không coi là lỗi.
func EnsureShiftIndexes(ctx context.Context, db *mongo.Database, collectionNames []string) error {
	for _, name := range collectionNames {
		col := db.Collection(name)
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "endedshift", Value: 1},
			},
			Options: options.Index().SetName("shift_window_idx"),
		}); err != nil && !isIndexExistsError(err) {
			return err
		}
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
