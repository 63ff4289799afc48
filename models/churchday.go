package models

import "time"

const (
	ServiceTypeSunday    = "sunday"
	ServiceTypeMonday    = "monday"
	ServiceTypeTuesday   = "tuesday"
	ServiceTypeWednesday = "wednesday"
	ServiceTypeChristmas = "christmas"
	ServiceTypeEaster    = "easter"
)

type Churchday struct {
	Churchday_ID        string    `json:"_id"`
	Attendance          *int      `json:"attendance"`
	Speaker             string    `json:"speaker"`
	Comment             string    `json:"comment"`
	Service_Type        string    `json:"service_type"`
	Owner               string    `json:"owner"`
	Service             *string   `json:"service"`
	Created_At          time.Time `json:"createdAt" goqu:"skipinsert,skipupdate"`
	Updated_At          time.Time `json:"updatedAt" goqu:"skipinsert,skipupdate"`
	Recorded_Attendance int       `json:"recorded_attendance" db:"-"`
}

type ChurchdayCreate struct {
	Attendance   *int   `json:"attendance" binding:"omitempty,gte=0"`
	Speaker      string `json:"speaker"`
	Comment      string `json:"comment"`
	Service_Type string `json:"service_type" binding:"required,oneof=sunday monday tuesday wednesday christmas easter"`
}
