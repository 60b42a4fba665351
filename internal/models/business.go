package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ActivityID is the server-assigned identifier of a business activity.
// The upstream API may encode it as a JSON string or number.
type ActivityID string

func (id ActivityID) String() string {
	return string(id)
}

func (id *ActivityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ActivityID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("activity id must be a string or number: %w", err)
	}
	*id = ActivityID(n.String())
	return nil
}

type BusinessActivity struct {
	ID   ActivityID `json:"id"`
	Name string     `json:"name"`
	Icon string     `json:"icon"`
}

// BusinessActivityBody is the payload of create and update requests.
type BusinessActivityBody struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon" validate:"required"`
}
