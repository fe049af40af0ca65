package dto

// Response 统一响应结构
type Response struct {
	Code      int         `json:"code"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
}
