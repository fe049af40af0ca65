package notify

import (
	"GreenGrove/internal/api/config"
	"GreenGrove/internal/pkg/mongo"
	"context"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Notifier 审核结果对外通知
type Notifier interface {
	SendDecision(ctx context.Context, decision *mongo.ModerationDecision)
}

type webhookNotifierImpl struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier() Notifier {
	client := resty.New().
		SetTimeout(5*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("User-Agent", "GreenGrove/1.0")

	return &webhookNotifierImpl{
		client: client,
		url:    config.Cfg.Webhook.URL,
	}
}

// SendDecision 推送审核决定，失败只记日志不影响主流程
func (n *webhookNotifierImpl) SendDecision(ctx context.Context, decision *mongo.ModerationDecision) {
	if n.url == "" {
		return
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"content_id":   decision.ContentID,
			"content_type": decision.ContentType,
			"decided_by":   decision.DecidedBy,
			"decision":     decision.Decision,
			"reason":       decision.Reason,
			"decided_at":   decision.DecidedAt,
		}).
		Post(n.url)
	if err != nil {
		log.WarnContext(ctx, "webhook send failed", "err", err)
		return
	}
	if resp.IsError() {
		log.WarnContext(ctx, "webhook rejected", "status", resp.StatusCode())
	}
}
