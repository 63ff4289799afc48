package models

import "time"

type Service struct {
	Service_ID          string     `json:"_id"`
	Start_Time          *time.Time `json:"start_time"`
	End_Time            *time.Time `json:"end_time"`
	Location            string     `json:"location"`
	Attendance          int        `json:"attendance"`
	Speaker             string     `json:"speaker"`
	Theme               string     `json:"theme"`
	Churchday           string     `json:"churchday"`
	Owner               string     `json:"owner"`
	Created_At          time.Time  `json:"createdAt" goqu:"skipinsert,skipupdate"`
	Updated_At          time.Time  `json:"updatedAt" goqu:"skipinsert,skipupdate"`
	Recorded_Attendance int        `json:"recorded_attendance" db:"-"`
}

type ServiceCreate struct {
	Start_Time *time.Time `json:"start_time"`
	End_Time   *time.Time `json:"end_time"`
	Location   string     `json:"location" binding:"required"`
	Attendance *int       `json:"attendance" binding:"omitempty,gte=0"`
	Speaker    string     `json:"speaker"`
	Theme      string     `json:"theme"`
	Churchday  string     `json:"churchday" binding:"required"`
}
