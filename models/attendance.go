package models

import "time"

type Attendance struct {
	Attendance_ID string     `json:"_id"`
	Check_In      *time.Time `json:"check_in"`
	Check_Out     *time.Time `json:"check_out"`
	Member_ID     string     `json:"member_id"`
	Owner         string     `json:"owner"`
	Created_At    time.Time  `json:"createdAt" goqu:"skipinsert,skipupdate"`
	Updated_At    time.Time  `json:"updatedAt" goqu:"skipinsert,skipupdate"`
}

// IsOpen reports whether the record is a check-in still waiting for its check-out.
func (a Attendance) IsOpen() bool {
	return a.Check_In != nil && a.Check_Out == nil
}

type AttendanceCreate struct {
	Member_ID string     `json:"member_id" binding:"required"`
	Check_In  *time.Time `json:"check_in"`
	Check_Out *time.Time `json:"check_out"`
}

type AttendanceCheckOut struct {
	Check_Out *time.Time `json:"check_out"`
}
