package response

import (
	"encoding/json"
	"time"

	"telescope-scheduler/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type AppointmentResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	UserFirstName string          `json:"user_first_name"`
	UserLastName  string          `json:"user_last_name"`
	TelescopeID   string          `json:"telescope_id"`
	TelescopeName string          `json:"telescope_name"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	IsPublic      bool            `json:"is_public"`
	Priority      string          `json:"priority"`
	Status        string          `json:"status"`
	Type          string          `json:"type"`
	Payload       json.RawMessage `json:"payload" copier:"-"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	NextCursor   string                 `json:"next_cursor,omitempty"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

var appointmentCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		uuidToString,
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(time.Time).UTC().Format(time.RFC3339), nil
			},
		},
	},
}

func FromAppointmentView(v *queries.AppointmentView) (*AppointmentResponse, error) {
	res := &AppointmentResponse{}
	if err := copier.CopyWithOption(res, v, appointmentCopyOption); err != nil {
		return nil, err
	}
	if len(v.Payload) > 0 {
		res.Payload = json.RawMessage(v.Payload)
	} else {
		res.Payload = json.RawMessage("{}")
	}
	return res, nil
}

func FromAppointmentList(items []*queries.AppointmentView, next *queries.Cursor) (*AppointmentListResponse, error) {
	res := &AppointmentListResponse{Appointments: make([]*AppointmentResponse, len(items))}
	for i, it := range items {
		r, err := FromAppointmentView(it)
		if err != nil {
			return nil, err
		}
		res.Appointments[i] = r
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}
