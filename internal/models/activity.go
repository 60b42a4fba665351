package models

import (
	"strconv"
	"time"
)

// Activity is one operator action recorded in the activity log.
type Activity struct {
	Message string
	Object  any
	Filter  LogFilter
}

type LogFilter struct {
	Fields    map[string]string
	Timestamp string
}

// ActivityEntry is a search hit returned by /api/activity.
type ActivityEntry struct {
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	ObjectType string    `json:"object_type"`
	ObjectID   string    `json:"object_id,omitempty"`
	UserType   string    `json:"user_type,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	BucketName string    `json:"bucket_name,omitempty"`
	Object     string    `json:"object,omitempty"`
}

func NewLogFilter(fields map[string]string) LogFilter {
	return LogFilter{
		Fields:    fields,
		Timestamp: strconv.FormatInt(time.Now().UnixNano(), 10),
	}
}
