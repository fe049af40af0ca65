package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModerationDecision 审核决定，只增不改的台账记录
type ModerationDecision struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContentID   uint64             `bson:"content_id" json:"contentId"`     // 关联的内容ID
	ContentType string             `bson:"content_type" json:"contentType"` // article/video/product
	DecidedBy   uint64             `bson:"decided_by" json:"decidedBy"`     // 审核人ID
	Decision    string             `bson:"decision" json:"decision"`        // approve/reject
	Reason      string             `bson:"reason,omitempty" json:"reason,omitempty"`
	DecidedAt   time.Time          `bson:"decided_at" json:"decidedAt"`
}
