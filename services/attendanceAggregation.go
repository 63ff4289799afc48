package services

import (
	"sort"
	"time"

	"github.com/ChurchPortal/models"
)

// Window is the closed time range a service occupies.
type Window struct {
	Start time.Time
	End   time.Time
}

// ServiceWindow derives the window of a service. Services without a start
// time have no window; a missing end time falls back to start+fallback.
func ServiceWindow(s models.Service, fallback time.Duration) (Window, bool) {
	if s.Start_Time == nil {
		return Window{}, false
	}
	end := s.Start_Time.Add(fallback)
	if s.End_Time != nil {
		end = *s.End_Time
	}
	return Window{Start: *s.Start_Time, End: end}, true
}

// Attends reports whether the session of a ledger entry overlaps w. An open
// session counts as the instant of its check-in.
func Attends(a models.Attendance, w Window) bool {
	if a.Check_In == nil {
		return false
	}
	sessionEnd := *a.Check_In
	if a.Check_Out != nil {
		sessionEnd = *a.Check_Out
	}
	return !a.Check_In.After(w.End) && !sessionEnd.Before(w.Start)
}

// Attendees returns the sorted distinct member ids attending any of windows.
func Attendees(records []models.Attendance, windows ...Window) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, w := range windows {
			if Attends(r, w) {
				seen[r.Member_ID] = struct{}{}
				break
			}
		}
	}

	members := make([]string, 0, len(seen))
	for id := range seen {
		members = append(members, id)
	}
	sort.Strings(members)
	return members
}

func ServiceReport(s models.Service, records []models.Attendance, fallback time.Duration) models.ServiceAttendanceReport {
	report := models.ServiceAttendanceReport{Service_ID: s.Service_ID, Members: []string{}}
	w, ok := ServiceWindow(s, fallback)
	if !ok {
		return report
	}

	report.Windowed = true
	report.Window_Start, report.Window_End = &w.Start, &w.End
	for _, r := range records {
		if !Attends(r, w) {
			continue
		}
		report.Check_Ins++
		if r.IsOpen() {
			report.Open_Sessions++
		}
	}
	report.Members = Attendees(records, w)
	report.Recorded_Attendance = len(report.Members)
	return report
}

// ChurchdayReport aggregates the services that point at churchdayID. A
// member attending several of them is counted once.
func ChurchdayReport(churchdayID string, services []models.Service, records []models.Attendance, fallback time.Duration) models.ChurchdayAttendanceReport {
	report := models.ChurchdayAttendanceReport{
		Churchday_ID: churchdayID,
		Members:      []string{},
		Services:     []models.ServiceAttendanceReport{},
	}

	var windows []Window
	for _, s := range services {
		if s.Churchday != churchdayID {
			continue
		}
		report.Services = append(report.Services, ServiceReport(s, records, fallback))
		if w, ok := ServiceWindow(s, fallback); ok {
			windows = append(windows, w)
		}
	}

	if len(windows) > 0 {
		report.Members = Attendees(records, windows...)
	}
	report.Recorded_Attendance = len(report.Members)
	return report
}

// envelope is the smallest window covering every windowed service.
func envelope(services []models.Service, fallback time.Duration) (Window, bool) {
	var env Window
	found := false
	for _, s := range services {
		w, ok := ServiceWindow(s, fallback)
		if !ok {
			continue
		}
		if !found {
			env, found = w, true
			continue
		}
		if w.Start.Before(env.Start) {
			env.Start = w.Start
		}
		if w.End.After(env.End) {
			env.End = w.End
		}
	}
	return env, found
}
