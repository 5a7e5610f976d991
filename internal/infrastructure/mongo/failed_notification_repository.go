package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// FailedNotificationRepository は failed_notifications コレクションへ送信失敗を記録する。
type FailedNotificationRepository struct {
	collection *mongo.Collection
}

func NewFailedNotificationRepository(db *mongo.Database, collectionName string) *FailedNotificationRepository {
	return &FailedNotificationRepository{collection: db.Collection(collectionName)}
}

// Record は送信失敗を pending 状態で保存する。
func (r *FailedNotificationRepository) Record(ctx context.Context, failure domain.FailedNotification) error {
	if _, err := r.collection.InsertOne(ctx, newFailedNotificationDocument(failure)); err != nil {
		return fmt.Errorf("insert failed notification: %w", err)
	}
	return nil
}
