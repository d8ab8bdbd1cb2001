package request

type CreateStockRequest struct {
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"companyName"`
	CurrentPrice  float64 `json:"currentPrice"`
	ChangePercent float64 `json:"changePercent"`
}
