package outbox

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// Message is a pending notification read from the outbox.
type Message struct {
	ID        uuid.UUID
	Channel   string
	Recipient string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// payload is the JSON document stored in the payload column.
type payload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message"`
}

func encodePayload(recipient, subject, message string) ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(payload{Recipient: recipient, Subject: subject, Message: message})
}

func decodePayload(data []byte) (payload, error) {
	var p payload
	err := jsoniter.ConfigFastest.Unmarshal(data, &p)

	return p, err
}
