package api

import "GreenGrove/internal/api/handler"

// HandlersGroup 聚合所有 HTTP Handler，便于统一注入路由
type HandlersGroup struct {
	ContentHandler *handler.ContentHandler
	AuditHandler   *handler.AuditHandler
}
