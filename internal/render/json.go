package render

import (
	"encoding/json"
	"strings"
)

// JSON encodes an outbound payload as a single line, suitable for an SSE data field
func JSON(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		// Only unsupported types land here; send the error text instead of dropping the event
		data, _ = json.Marshal(err.Error())
	}
	return string(data)
}

// Envelope wraps an already encoded payload in the {"event","data"} frame used over WebSockets
func Envelope(event, data string) []byte {
	if data == "" {
		data = "null"
	}
	var b strings.Builder
	b.WriteString(`{"event":`)
	b.WriteString(JSON(event))
	b.WriteString(`,"data":`)
	b.WriteString(data)
	b.WriteString(`}`)
	return []byte(b.String())
}

// SSEFrame formats one Server-Sent Events frame
func SSEFrame(event, data string) string {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteString("\ndata: ")
	b.WriteString(data)
	b.WriteString("\n\n")
	return b.String()
}
