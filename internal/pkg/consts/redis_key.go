package consts

const (
	ContentViewKey  = "content:view:"
	ContentLikeKey  = "content:like:"
	ContentDirtyKey = "content:dirty"
	ContentListKey  = "content:list:"
)

const (
	ContentTransitionLock = "lock:content:transition:"
)
