package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuoteStatus represents the lifecycle status of a persisted quote
type QuoteStatus int

const (
	QuoteStatusDraft    QuoteStatus = 0
	QuoteStatusSent     QuoteStatus = 1
	QuoteStatusAccepted QuoteStatus = 2
	QuoteStatusDeclined QuoteStatus = 3
)

func (s QuoteStatus) String() string {
	names := [...]string{"draft", "sent", "accepted", "declined"}
	if int(s) < 0 || int(s) >= len(names) {
		return "draft"
	}
	return names[s]
}

// ParseQuoteStatus converts a string token into a QuoteStatus
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	switch s {
	case "draft":
		return QuoteStatusDraft, nil
	case "sent":
		return QuoteStatusSent, nil
	case "accepted":
		return QuoteStatusAccepted, nil
	case "declined":
		return QuoteStatusDeclined, nil
	}
	return QuoteStatusDraft, fmt.Errorf("unknown quote status %q", s)
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	switch str {
	case "sent":
		*s = QuoteStatusSent
	case "accepted":
		*s = QuoteStatusAccepted
	case "declined":
		*s = QuoteStatusDeclined
	default:
		*s = QuoteStatusDraft
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
