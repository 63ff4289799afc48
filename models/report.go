package models

import "time"

type ServiceAttendanceReport struct {
	Service_ID          string     `json:"service"`
	Windowed            bool       `json:"windowed"`
	Window_Start        *time.Time `json:"window_start"`
	Window_End          *time.Time `json:"window_end"`
	Recorded_Attendance int        `json:"recorded_attendance"`
	Check_Ins           int        `json:"check_ins"`
	Open_Sessions       int        `json:"open_sessions"`
	Members             []string   `json:"members"`
}

type ChurchdayAttendanceReport struct {
	Churchday_ID        string                    `json:"churchday"`
	Recorded_Attendance int                       `json:"recorded_attendance"`
	Members             []string                  `json:"members"`
	Services            []ServiceAttendanceReport `json:"services"`
}

type Stats struct {
	Members           int64 `json:"members"`
	Services          int64 `json:"services"`
	Churchdays        int64 `json:"churchdays"`
	AttendanceRecords int64 `json:"attendanceRecords"`
	OpenSessions      int64 `json:"openSessions"`
}
