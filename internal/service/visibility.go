package service

import (
	"GreenGrove/internal/model"
	"GreenGrove/internal/pkg/consts"
)

// VisibleTo 判断内容在管理视角下对操作者是否可见
// ADMIN 可见全部；MODERATOR 仅可见自己名下的内容（含各个状态）
// 他人已发布的内容走公开读取链路，不经过这里
func VisibleTo(actor model.Actor, content *model.Content) bool {
	if content == nil || content.IsDeleted {
		return false
	}

	if actor.Role == consts.RoleAdmin {
		return true
	}

	return content.OwnerID == actor.ID
}

// FilterVisible 过滤出操作者可见的内容，保持入参顺序
func FilterVisible(actor model.Actor, contents []*model.Content) []*model.Content {
	result := make([]*model.Content, 0, len(contents))
	for _, content := range contents {
		if VisibleTo(actor, content) {
			result = append(result, content)
		}
	}
	return result
}
