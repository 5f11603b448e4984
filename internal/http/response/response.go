package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requestIDKey 与中间件写入的上下文 key 保持一致
const requestIDKey = "request_id"

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error     string `json:"error"`                // 提示消息
	RequestID string `json:"request_id,omitempty"` // 请求追踪ID
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// PageBody 分页响应结构
type PageBody struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// NewPagination 根据总数计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// Success 成功响应，直接输出数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SuccessWithMsg 成功响应（附带提示消息）
func SuccessWithMsg(c *gin.Context, msg string, fields gin.H) {
	body := gin.H{"message": msg}
	for key, value := range fields {
		body[key] = value
	}
	c.JSON(http.StatusOK, body)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, items interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageBody{
		Items:      items,
		Pagination: pagination,
	})
}

// Error 错误响应，statusCode 即 HTTP 状态码
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{
		Error:     msg,
		RequestID: requestID(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(requestIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
