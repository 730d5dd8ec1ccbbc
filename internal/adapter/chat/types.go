package chat

// Identity describes an authenticated platform account.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Message is a single channel message as held by the platform.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
}

// Button is a labeled action button attached to a message. Code is the
// opaque action code raised back in a ButtonEvent when clicked.
type Button struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Style string `json:"style,omitempty"`
}

// Button styles understood by the platform.
const (
	ButtonStylePrimary   = "primary"
	ButtonStyleSecondary = "secondary"
	ButtonStyleSuccess   = "success"
	ButtonStyleDanger    = "danger"
)

// EventType discriminates inbound event payloads.
type EventType string

const (
	EventTypeMessage EventType = "message"
	EventTypeButton  EventType = "button"
)

// Event is one inbound user action: a new text message or a button click.
type Event struct {
	Type      EventType `json:"type"`
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Bot       bool      `json:"bot,omitempty"`
	Text      string    `json:"text,omitempty"`
	Code      string    `json:"code,omitempty"`
	Mentions  []string  `json:"mentions,omitempty"`
}

// EventPage is one long-poll result: zero or more events plus the cursor to
// resume from.
type EventPage struct {
	Cursor string  `json:"cursor"`
	Events []Event `json:"events"`
}

type sendRequest struct {
	Content string   `json:"content"`
	Buttons []Button `json:"buttons,omitempty"`
}

type editRequest struct {
	Content string `json:"content"`
}

type memberResponse struct {
	Administrator bool `json:"administrator"`
}
