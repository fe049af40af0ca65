package kafka

// EngagementEvent 前台埋点上报的互动事件
type EngagementEvent struct {
	ContentID uint64 `json:"content_id"`
	Action    string `json:"action"` // view/like/unlike
}
