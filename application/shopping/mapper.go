package shopping

import (
	"encoding/json"
	"time"

	"shopping-api/domain/shopping"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(shopping.MoneyScale))
}

func toShoppingResponse(o *shopping.Order, loc *time.Location) ShoppingResponse {
	return ShoppingResponse{
		ID:             o.ID(),
		UserIdentifier: o.UserIdentifier(),
		Total:          money(o.Total()),
		Date:           o.Date().In(loc).Format(ResponseDateLayout),
		Items: lo.Map(o.Items(), func(it shopping.Item, _ int) ItemResponse {
			return ItemResponse{
				ProductIdentifier: it.ProductIdentifier(),
				Price:             money(it.Price()),
			}
		}),
	}
}

func toShoppingResponses(orders []*shopping.Order, loc *time.Location) []ShoppingResponse {
	return lo.Map(orders, func(o *shopping.Order, _ int) ShoppingResponse {
		return toShoppingResponse(o, loc)
	})
}

func toPageResponse(p *shopping.Page, loc *time.Location) *PageResponse {
	return &PageResponse{
		Content:       toShoppingResponses(p.Content, loc),
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
	}
}

func toReportResponse(r shopping.Report) *ReportResponse {
	return &ReportResponse{
		Count: r.Count,
		Total: money(r.Total),
		Mean:  money(r.Mean),
	}
}
