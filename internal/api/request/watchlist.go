package request

type CreateWatchlistRequest struct {
	Name string `json:"name"`
}

type UpdateWatchlistRequest struct {
	Name string `json:"name"`
}
