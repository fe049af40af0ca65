package consts

// 内容类型
const (
	ContentTypeArticle = "article"
	ContentTypeVideo   = "video"
	ContentTypeProduct = "product"
)

// 商品分类，仅 product 类型携带
const (
	CategoryTool       = "tool"
	CategoryBook       = "book"
	CategoryPot        = "pot"
	CategoryAccessory  = "accessory"
	CategorySuggestion = "suggestion"
)

// 内容状态
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// 审核决定
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// 角色
const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// 互动事件类型
const (
	EngagementView   = "view"
	EngagementLike   = "like"
	EngagementUnlike = "unlike"
)
