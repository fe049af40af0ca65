package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ModerationRepo 审核台账。只暴露追加和查询，不存在任何更新/删除入口
type ModerationRepo interface {
	Append(ctx context.Context, decision *ModerationDecision) error
	History(ctx context.Context, contentID uint64) ([]*ModerationDecision, error)
}

type moderationRepoImpl struct {
	col *mongo.Collection
}

func NewModerationRepo(db *mongo.Database) ModerationRepo {
	return &moderationRepoImpl{
		col: db.Collection("moderation_decisions"),
	}
}

// Append 追加一条审核决定
func (s *moderationRepoImpl) Append(ctx context.Context, decision *ModerationDecision) error {
	_, err := s.col.InsertOne(ctx, decision)
	return err
}

// History 按 decided_at 升序返回指定内容的全部审核决定，重复查询结果稳定
func (s *moderationRepoImpl) History(ctx context.Context, contentID uint64) ([]*ModerationDecision, error) {
	filter := bson.M{"content_id": contentID}
	opts := options.Find().
		SetSort(bson.D{{Key: "decided_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*ModerationDecision
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
