package request

// SetAPIKeyRequest stores the market data provider key. The key is
// fernet-encrypted before it touches the settings table.
type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}
