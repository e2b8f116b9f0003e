package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DueDateRule represents when a payment term falls due
type DueDateRule int

const (
	DueDateOnSigning DueDateRule = 0
	DueDateMilestone DueDateRule = 1
	DueDateNet15     DueDateRule = 2
	DueDateNet30     DueDateRule = 3
	DueDateNet60     DueDateRule = 4
	DueDateCustom    DueDateRule = 5
)

func (r DueDateRule) String() string {
	names := [...]string{"onSigning", "milestone", "net15", "net30", "net60", "custom"}
	if int(r) < 0 || int(r) >= len(names) {
		return "onSigning"
	}
	return names[r]
}

// Label returns the human-readable form used on rendered documents
func (r DueDateRule) Label() string {
	labels := [...]string{"On signing", "On milestone completion", "Net 15", "Net 30", "Net 60", "Custom date"}
	if int(r) < 0 || int(r) >= len(labels) {
		return "On signing"
	}
	return labels[r]
}

func (r DueDateRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *DueDateRule) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = DueDateRule(i)
		return nil
	}
	switch str {
	case "milestone":
		*r = DueDateMilestone
	case "net15":
		*r = DueDateNet15
	case "net30":
		*r = DueDateNet30
	case "net60":
		*r = DueDateNet60
	case "custom":
		*r = DueDateCustom
	default:
		*r = DueDateOnSigning
	}
	return nil
}

func (r DueDateRule) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *DueDateRule) Scan(value interface{}) error {
	if value == nil {
		*r = DueDateOnSigning
		return nil
	}
	switch v := value.(type) {
	case int64:
		*r = DueDateRule(v)
	case int:
		*r = DueDateRule(v)
	}
	return nil
}
