package response

// RequestIDKey 是 gin context 中保存请求 ID 的键。
const RequestIDKey = "request_id"

// TimestampLayout 错误响应时间戳格式
const TimestampLayout = "02-01-2006 15:04:05"

// ErrorResponse 是统一的错误响应结构。
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}
