package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/sngm3741/contact-site/internal/admin/application"
	"github.com/sngm3741/contact-site/internal/public/domain"
)

// MessageRepository はお問い合わせを MongoDB で扱う実装リポジトリ。
// Public の書き込みポートと Admin の読み取りポートの両方を満たす。
type MessageRepository struct {
	messages *mongo.Collection
}

// NewMessageRepository はお問い合わせコレクションを束縛したリポジトリを構築する。
func NewMessageRepository(db *mongo.Database, collection string) *MessageRepository {
	return &MessageRepository{messages: db.Collection(collection)}
}

// EnsureIndexes は一覧表示とメールアドレス検索用のインデックスを作成する。
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: 1}}},
	})
	return err
}

// Create はお問い合わせを 1 件追加する。
func (r *MessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	if msg == nil {
		return errors.New("message is nil")
	}
	if msg.ID == "" {
		return errors.New("message id is empty")
	}
	if _, err := r.messages.InsertOne(ctx, newContactMessageDocument(*msg)); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// Find は作成日時の降順でページングした一覧を返す。
func (r *MessageRepository) Find(ctx context.Context, paging adminapp.Paging) ([]domain.ContactMessage, error) {
	paging = paging.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(paging.Offset())).
		SetLimit(int64(paging.Limit))

	cursor, err := r.messages.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := make([]domain.ContactMessage, 0, paging.Limit)
	for cursor.Next(ctx) {
		var doc ContactMessageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, mapContactMessageDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID は ID から単一のお問い合わせを取得する。存在しない場合は adminapp.ErrNotFound。
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	var doc ContactMessageDocument
	err := r.messages.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, adminapp.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	msg := mapContactMessageDocument(doc)
	return &msg, nil
}
