package live

// Message types sent to the browser.
const (
	TypeRender = "render"
	TypeError  = "error"
)

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type  string `json:"type"`
	HTML  string `json:"html,omitempty"`
	Error string `json:"error,omitempty"`

	// Code is the registered code of an engine error, such as "R003".
	Code string `json:"code,omitempty"`
}

// ClientEvent is an event reported by the browser.
type ClientEvent struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
	Value any    `json:"value,omitempty"`
}
