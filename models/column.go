package models

import (
	"database/sql/driver"
	"fmt"

	json "github.com/goccy/go-json"
)

// MealItems is stored as a JSON array in a text column.
type MealItems []MealItem

func (m *MealItems) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*m = MealItems{}
		return nil
	}
	items := MealItems{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode meal items: %w", err)
	}
	*m = items
	return nil
}

func (m MealItems) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// JSONMap is an open-ended JSON object column. A nil map is stored as NULL.
type JSONMap map[string]interface{}

func (j *JSONMap) Scan(value interface{}) error {
	raw, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		*j = nil
		return nil
	}
	out := JSONMap{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode extras: %w", err)
	}
	*j = out
	return nil
}

func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}
