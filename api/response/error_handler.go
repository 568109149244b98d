/*
Package response - API 层统一响应处理

设计原则:
1. HTTP 状态码映射放在 API 层，不污染领域层和应用层
2. 错误响应不暴露内部细节（堆栈、内部错误消息等）
3. 所有错误响应携带 requestId 用于日志追踪

错误响应格式:

	{ status: 404, message: "...", errorCode: "SHOPPING_NOT_FOUND", timestamp: "dd-MM-yyyy HH:mm:ss", requestId: "..." }
*/
package response

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"shopping-api/domain/shared"
	"shopping-api/pkg/errors"
	"shopping-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:             http.StatusInternalServerError,
	errors.CodeValidation:           http.StatusBadRequest,
	errors.CodeNotFound:             http.StatusNotFound,
	errors.CodeConflict:             http.StatusConflict,
	errors.CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	errors.CodeTooManyRequests:      http.StatusTooManyRequests,
	errors.CodeMethodNotAllowed:     http.StatusMethodNotAllowed,

	errors.CodeShoppingNotFound: http.StatusNotFound,
	errors.CodeUserNotFound:     http.StatusNotFound,
	errors.CodeProductNotFound:  http.StatusNotFound,
}

func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

var location atomic.Pointer[time.Location]

// SetLocation sets the zone error timestamps are rendered in.
func SetLocation(loc *time.Location) {
	location.Store(loc)
}

func timestamp() string {
	now := time.Now()
	if loc := location.Load(); loc != nil {
		now = now.In(loc)
	}
	return now.Format(TimestampLayout)
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

func GetRequestID(c *gin.Context) string {
	return getRequestID(c)
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// NewErrorResponse builds the body for status and code.
func NewErrorResponse(c *gin.Context, status int, code errors.ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:    status,
		Message:   message,
		ErrorCode: string(code),
		Timestamp: timestamp(),
		RequestID: getRequestID(c),
	}
}

// AbortWithError writes the error body and stops the handler chain.
func AbortWithError(c *gin.Context, status int, code errors.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(c, status, code, message))
}

// HandleBindError 处理参数绑定等框架层错误，列出所有非法字段。
func HandleBindError(c *gin.Context, err error) {
	message := bindErrorMessage(err)

	logger.Warn("Request binding failed",
		zap.String("request_id", getRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err))

	c.JSON(http.StatusBadRequest, NewErrorResponse(c, http.StatusBadRequest, errors.CodeValidation, message))
}

func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !stdErrors.As(err, &verrs) {
		return "malformed request body"
	}

	var sb strings.Builder
	sb.WriteString("invalid fields:")
	for _, fe := range verrs {
		fmt.Fprintf(&sb, " [%s: %s]", fieldPath(fe), describeTag(fe))
	}
	return sb.String()
}

// fieldPath drops the root struct name: "CreateShoppingRequest.items[0].productIdentifier"
// becomes "items[0].productIdentifier".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return "must have at least " + fe.Param() + " element(s)"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	default:
		return "failed on " + fe.Tag()
	}
}

// HandleAppError 按应用错误码自动映射 HTTP 状态码。
func HandleAppError(c *gin.Context, err error) {
	requestID := getRequestID(c)
	appErr := errors.FromDomainError(err)
	httpStatus := mapErrorCodeToHTTPStatus(appErr.Code)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	userMessage := appErr.Message
	if httpStatus >= http.StatusInternalServerError {
		fields = append(fields, zap.Strings("stack", extractStack(err)))
		logger.Error(appErr.Message, fields...)
		userMessage = "internal server error"
	} else {
		logger.Warn(appErr.Message, fields...)
	}

	c.JSON(httpStatus, NewErrorResponse(c, httpStatus, appErr.Code, userMessage))
}

func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	return captureStack(4)
}
