package dto

// InteractionRequest is the webhook payload delivered when a user clicks a
// button. Type "ping" is the platform's endpoint validation probe.
type InteractionRequest struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	Code      string `json:"code"`
}

// InteractionResponse is returned to the platform and shown to the acting
// user. Ephemeral responses are only visible to that user.
type InteractionResponse struct {
	Type      string `json:"type"`
	Content   string `json:"content,omitempty"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}

// Interaction response types.
const (
	InteractionResponsePong    = "pong"
	InteractionResponseMessage = "message"
)
