package amqp

import (
	"encoding/json"
	"time"
)

// DatasetChangedMessage tells the rendering layer the dataset moved on.
// It carries only the revision; consumers re-read state through the API.
type DatasetChangedMessage struct {
	Revision  int64     `json:"revision"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewDatasetChangedMessage creates a change notification for a revision.
func NewDatasetChangedMessage(revision int64) *DatasetChangedMessage {
	return &DatasetChangedMessage{
		Revision:  revision,
		ChangedAt: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DatasetChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DatasetChangedMessageFromJSON creates a message from JSON bytes
func DatasetChangedMessageFromJSON(data []byte) (*DatasetChangedMessage, error) {
	var msg DatasetChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AlertsMessage carries the current alert strings, published by the
// reminder worker so external notifiers do not have to poll.
type AlertsMessage struct {
	Alerts   []string  `json:"alerts"`
	RaisedAt time.Time `json:"raised_at"`
}

// NewAlertsMessage creates an alert batch message.
func NewAlertsMessage(alerts []string) *AlertsMessage {
	return &AlertsMessage{
		Alerts:   alerts,
		RaisedAt: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *AlertsMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AlertsMessageFromJSON creates a message from JSON bytes
func AlertsMessageFromJSON(data []byte) (*AlertsMessage, error) {
	var msg AlertsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
