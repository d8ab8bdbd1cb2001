package request

type CreatePortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
