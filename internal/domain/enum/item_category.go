package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ItemCategory classifies a quote line item by the kind of work it bills
type ItemCategory int

const (
	ItemCategoryDevelopment    ItemCategory = 0
	ItemCategoryDesign         ItemCategory = 1
	ItemCategoryInfrastructure ItemCategory = 2
	ItemCategoryMaintenance    ItemCategory = 3
	ItemCategoryConsulting     ItemCategory = 4
	ItemCategoryCustom         ItemCategory = 5
)

func (c ItemCategory) String() string {
	names := [...]string{"development", "design", "infrastructure", "maintenance", "consulting", "custom"}
	if int(c) < 0 || int(c) >= len(names) {
		return "custom"
	}
	return names[c]
}

func (c ItemCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ItemCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ItemCategory(i)
		return nil
	}
	switch str {
	case "development":
		*c = ItemCategoryDevelopment
	case "design":
		*c = ItemCategoryDesign
	case "infrastructure":
		*c = ItemCategoryInfrastructure
	case "maintenance":
		*c = ItemCategoryMaintenance
	case "consulting":
		*c = ItemCategoryConsulting
	default:
		*c = ItemCategoryCustom
	}
	return nil
}

func (c ItemCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ItemCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ItemCategoryCustom
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ItemCategory(v)
	case int:
		*c = ItemCategory(v)
	}
	return nil
}
