package repository

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func encodeJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal -> %w", err)
	}
	return datatypes.JSON(b), nil
}

// decodeJSON leaves out untouched when the column is empty.
func decodeJSON(raw datatypes.JSON, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}
	return nil
}
