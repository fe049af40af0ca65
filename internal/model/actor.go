package model

// Actor 当前操作者，每次请求从 Token 解析，不做持久化
type Actor struct {
	ID   uint64
	Role string
}
