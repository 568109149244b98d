/*
Package shopping - 购物订单 API 控制器

职责:
1. 接收 HTTP 请求，解析参数
2. 调用应用服务与报表引擎
3. 使用 response 包统一处理响应和错误

错误处理原则:
1. 参数绑定错误: response.HandleBindError 返回 400 并列出非法字段
2. 业务错误: response.HandleAppError 自动映射状态码
*/
package shopping

import (
	"strconv"

	"shopping-api/api/ctxutil"
	"shopping-api/api/middleware"
	"shopping-api/api/response"
	shoppingapp "shopping-api/application/shopping"
	"shopping-api/domain/shopping"

	"github.com/gin-gonic/gin"
)

// Controller 购物订单控制器
type Controller struct {
	service *shoppingapp.ApplicationService
	reports *shoppingapp.ReportEngine
}

func NewController(service *shoppingapp.ApplicationService, reports *shoppingapp.ReportEngine) *Controller {
	return &Controller{service: service, reports: reports}
}

// RegisterRoutes 注册 /shoppings 路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/shoppings")
	{
		group.POST("", middleware.RequireJSON(), c.Create)
		group.GET("", c.FindAll)
		group.GET("/pageable", c.FindPage)
		group.GET("/search", c.Search)
		group.GET("/report", c.Report)
		group.GET("/shopByUser/:userIdentifier", c.FindByUser)
		group.GET("/:id", c.GetByID)
		group.DELETE("/:id", c.Delete)
	}
}

// Create POST /shoppings
func (c *Controller) Create(ctx *gin.Context) {
	var req shoppingapp.CreateShoppingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleBindError(ctx, err)
		return
	}

	created, err := c.service.CreateShopping(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, created)
}

// GetByID GET /shoppings/:id
func (c *Controller) GetByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	found, err := c.service.GetByID(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, found)
}

// FindAll GET /shoppings
func (c *Controller) FindAll(ctx *gin.Context) {
	all, err := c.service.FindAll(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, all)
}

// FindPage GET /shoppings/pageable?page&linesPerPage&direction&orderBy
func (c *Controller) FindPage(ctx *gin.Context) {
	var q shoppingapp.PageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleBindError(ctx, err)
		return
	}

	page, err := c.service.FindPage(ctxutil.WithRequestID(ctx), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, page)
}

// FindByUser GET /shoppings/shopByUser/:userIdentifier
func (c *Controller) FindByUser(ctx *gin.Context) {
	orders, err := c.service.FindByUser(ctxutil.WithRequestID(ctx), ctx.Param("userIdentifier"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders)
}

// Search GET /shoppings/search?startDate=dd/MM/yyyy&endDate=&maxValue=
func (c *Controller) Search(ctx *gin.Context) {
	var q shoppingapp.SearchQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleBindError(ctx, err)
		return
	}

	orders, err := c.reports.ListByFilters(ctxutil.WithRequestID(ctx), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders)
}

// Report GET /shoppings/report?startDate=dd/MM/yyyy&endDate=dd/MM/yyyy
func (c *Controller) Report(ctx *gin.Context) {
	var q shoppingapp.ReportQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleBindError(ctx, err)
		return
	}

	report, err := c.reports.ReportByDate(ctxutil.WithRequestID(ctx), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, report)
}

// Delete DELETE /shoppings/:id
func (c *Controller) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctxutil.WithRequestID(ctx), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// parseID writes a validation error and returns false for a non-numeric id.
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.HandleAppError(ctx, shopping.NewValidationError("id", "id must be a positive integer"))
		return 0, false
	}
	return id, true
}
