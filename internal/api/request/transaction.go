package request

// CreateTransactionRequest records one buy or sell. Date is optional;
// a null or empty date means "let the store assign today".
type CreateTransactionRequest struct {
	PortfolioID  string  `json:"portfolioId"`
	StockID      string  `json:"stockId"`
	Type         string  `json:"transactionType"`
	Amount       float64 `json:"amount"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Date         *string `json:"transactionDate"`
}
