package events

import (
	"encoding/json"
	"time"
)

// Event types pushed to /events subscribers.
const (
	RunStarted     = "run_started"
	RunFinished    = "run_finished"
	DatasetUpdated = "dataset_updated"
)

// Version of the event envelope.
const Version = 1

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type RunStartedData struct {
	Sources []string `json:"sources"`
	Target  int      `json:"target"`
	Query   string   `json:"query,omitempty"`
}

type RunFinishedData struct {
	Records   int            `json:"records"`
	Failed    int            `json:"failed"`
	PerSource map[string]int `json:"per_source"`
	Error     string         `json:"error,omitempty"`
}

type DatasetUpdatedData struct {
	Size int `json:"size"`
}

func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   Version,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
