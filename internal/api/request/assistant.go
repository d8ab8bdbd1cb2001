package request

type AssistantMessageRequest struct {
	Message string `json:"message"`
}
