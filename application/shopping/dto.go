package shopping

import "encoding/json"

// Wire formats shared by requests and responses.
const (
	QueryDateLayout    = "02/01/2006"
	ResponseDateLayout = "02-01-2006 15:04:05"
)

// CreateShoppingRequest is the create body. Client supplied prices are not
// part of it: every price comes from the catalog.
type CreateShoppingRequest struct {
	UserIdentifier string        `json:"userIdentifier" binding:"required,max=64"`
	Items          []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

type ItemRequest struct {
	ProductIdentifier string `json:"productIdentifier" binding:"required,max=64"`
}

// ShoppingResponse 订单返回模型，金额保留两位小数
type ShoppingResponse struct {
	ID             int64          `json:"id"`
	UserIdentifier string         `json:"userIdentifier"`
	Total          json.Number    `json:"total"`
	Date           string         `json:"date"`
	Items          []ItemResponse `json:"items"`
}

type ItemResponse struct {
	ProductIdentifier string      `json:"productIdentifier"`
	Price             json.Number `json:"price"`
}

// PageResponse 分页返回模型
type PageResponse struct {
	Content       []ShoppingResponse `json:"content"`
	Number        int                `json:"number"`
	Size          int                `json:"size"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
}

// ReportResponse aggregate of a date-range report. Never null.
type ReportResponse struct {
	Count int64       `json:"count"`
	Total json.Number `json:"total"`
	Mean  json.Number `json:"mean"`
}

// PageQuery raw paging parameters; absent ones take the defaults.
type PageQuery struct {
	Page         *int   `form:"page"`
	LinesPerPage *int   `form:"linesPerPage"`
	Direction    string `form:"direction"`
	OrderBy      string `form:"orderBy"`
}

// SearchQuery filtered listing parameters, dates as dd/MM/yyyy.
type SearchQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	MaxValue  string `form:"maxValue"`
}

// ReportQuery report parameters, dates as dd/MM/yyyy.
type ReportQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
