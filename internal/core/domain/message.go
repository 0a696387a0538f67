package domain

import "time"

// Sender identifies who wrote a chat message.
type Sender string

// Message senders.
const (
	SenderCustomer Sender = "CUSTOMER"
	SenderAdmin    Sender = "ADMIN"
)

// IsValid returns true if the sender is recognised.
func (s Sender) IsValid() bool {
	return s == SenderCustomer || s == SenderAdmin
}

// String returns the string representation.
func (s Sender) String() string {
	return string(s)
}

// Message is a single chat line. A thread is every message sharing a
// CorrelationID, ordered by CreatedAt ascending.
type Message struct {
	ID            string    `json:"id" bson:"_id"`
	CorrelationID string    `json:"correlationId" bson:"correlationId"`
	Sender        Sender    `json:"sender" bson:"sender"`
	Text          string    `json:"text" bson:"text"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// ThreadSummary describes a chat thread for the admin inbox.
type ThreadSummary struct {
	CorrelationID string    `json:"correlationId"`
	Messages      int       `json:"messages"`
	LastSender    Sender    `json:"lastSender"`
	LastText      string    `json:"lastText"`
	LastAt        time.Time `json:"lastAt"`
}
