package response

import (
	"time"

	"telescope-scheduler/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type LogResponse struct {
	ID            string   `json:"id"`
	AffectedTable string   `json:"affected_table"`
	Action        string   `json:"action"`
	Event         string   `json:"event"`
	Success       bool     `json:"success"`
	RecordID      string   `json:"record_id,omitempty" copier:"-"`
	UserID        string   `json:"user_id,omitempty" copier:"-"`
	ErrorTags     []string `json:"error_tags"`
	Timestamp     string   `json:"timestamp" copier:"-"`
}

type LogListResponse struct {
	Logs       []*LogResponse `json:"logs"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

func FromLogList(items []*queries.LogView, next *queries.Cursor) (*LogListResponse, error) {
	res := &LogListResponse{Logs: make([]*LogResponse, len(items))}
	for i, it := range items {
		r := &LogResponse{}
		if err := copier.CopyWithOption(r, it, copier.Option{Converters: []copier.TypeConverter{uuidToString}}); err != nil {
			return nil, err
		}
		if it.RecordID != nil {
			r.RecordID = it.RecordID.String()
		}
		if it.UserID != nil {
			r.UserID = it.UserID.String()
		}
		if r.ErrorTags == nil {
			r.ErrorTags = []string{}
		}
		r.Timestamp = it.Timestamp.UTC().Format(time.RFC3339Nano)
		res.Logs[i] = r
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}
