// package basesvc cung cấp service cơ bản cho việc tương tác với MongoDB
package basesvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/thinklm/ma-shift-change/internal/api/base/models"
	"github.com/thinklm/ma-shift-change/internal/common"
	"github.com/thinklm/ma-shift-change/internal/utility"
)

// BaseServiceMongo định nghĩa các thao tác CRUD cơ bản trên một collection.
// Type parameter T là kiểu document của collection.
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	Upsert(ctx context.Context, filter interface{}, data T) (T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id string) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
	DeleteOne(ctx context.Context, filter interface{}) error
}

// BaseServiceMongoImpl là implementation chuẩn của BaseServiceMongo.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo service mới trên một collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// Collection trả về collection handle bên dưới.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// normalizeFilter đảm bảo filter nil được hiểu là "match tất cả".
func normalizeFilter(filter interface{}) interface{} {
	if filter == nil {
		return bson.D{}
	}
	return filter
}

// InsertOne chèn một document, tự gắn createdAt/updatedAt (UnixMilli).
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, "Dữ liệu không chuyển được thành document", 400, nil)
	}

	now := time.Now().UnixMilli()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return s.FindOne(ctx, bson.M{"_id": result.InsertedID}, nil)
}

// Upsert ghi đè document khớp filter, chèn mới nếu chưa có.
// _id không được phép xuất hiện trong $set nên được tách sang $setOnInsert.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, "Dữ liệu không chuyển được thành document", 400, nil)
	}

	now := time.Now().UnixMilli()
	setOnInsert := bson.M{"createdAt": now}
	if id, ok := doc["_id"]; ok {
		delete(doc, "_id")
		setOnInsert["_id"] = id
	}
	doc["updatedAt"] = now

	update := bson.M{
		"$set":         doc,
		"$setOnInsert": setOnInsert,
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result T
	err = s.collection.FindOneAndUpdate(ctx, normalizeFilter(filter), update, opts).Decode(&result)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return result, nil
}

// FindOne tìm một document theo filter. Không có document trả về ErrNotFound.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T

	var err error
	if opts != nil {
		err = s.collection.FindOne(ctx, normalizeFilter(filter), opts).Decode(&result)
	} else {
		err = s.collection.FindOne(ctx, normalizeFilter(filter)).Decode(&result)
	}
	if err != nil {
		var zero T
		return zero, common.ConvertMongoError(err)
	}

	return result, nil
}

// FindOneById tìm document theo identifier chuỗi (_id của phiếu giao ca là
// chuỗi do builder sinh ra, không phải ObjectID).
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id string) (T, error) {
	if id == "" {
		var zero T
		return zero, common.ErrRequiredField
	}
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find trả về tất cả document khớp filter.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.collection.Find(ctx, normalizeFilter(filter), opts)
	} else {
		cursor, err = s.collection.Find(ctx, normalizeFilter(filter))
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return results, nil
}

// FindWithPagination tìm document theo filter với phân trang.
// page bắt đầu từ 1; limit <= 0 dùng mặc định 50.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[T], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}

	filter = normalizeFilter(filter)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit).SetLimit(limit)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	totalPage := total / limit
	if total%limit != 0 {
		totalPage++
	}

	return &basemodels.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// CountDocuments đếm số document khớp filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, normalizeFilter(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Distinct trả về các giá trị khác nhau của một field.
func (s *BaseServiceMongoImpl[T]) Distinct(ctx context.Context, fieldName string, filter interface{}) ([]interface{}, error) {
	if fieldName == "" {
		return nil, common.ErrRequiredField
	}
	values, err := s.collection.Distinct(ctx, fieldName, normalizeFilter(filter))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return values, nil
}

// DocumentExists kiểm tra có document nào khớp filter hay không.
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	opts := options.Count().SetLimit(1)
	count, err := s.collection.CountDocuments(ctx, normalizeFilter(filter), opts)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// DeleteOne xóa một document khớp filter. Không khớp trả về ErrNotFound.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	result, err := s.collection.DeleteOne(ctx, normalizeFilter(filter))
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
