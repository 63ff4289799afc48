package controllers

import (
	"database/sql/driver"
	"time"

	"github.com/ChurchPortal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

const (
	MockAdminID     = "6f1c7a52-3a41-4d0e-9a43-1c2f3b4d5e60"
	MockUserID      = "0b9e2d14-83c7-4a6e-b0f5-7d8c9e0a1b22"
	MockMemberID    = "c3a1f7e2-5b64-4d8a-9e01-2f3a4b5c6d70"
	MockServiceID   = "8d2e4f60-1a3b-4c5d-8e9f-0a1b2c3d4e50"
	MockChurchdayID = "e5f6a7b8-c9d0-4e1f-a2b3-c4d5e6f7a8b9"
	MockRecordID    = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	UnknownID       = "99999999-9999-4999-8999-999999999999"
)

var (
	userColumns       = []string{"user_id", "name", "email", "password", "role", "is_verified", "verification_token", "verified_at", "created_at", "updated_at"}
	memberColumns     = []string{"member_id", "surname", "other_names", "email", "phone", "address", "age", "gender", "occupation", "marital_status", "number_of_children", "spouse_name", "saved_or_not", "baptism_status", "baptism_date", "faith_declaration_status", "ministry_membership", "emergency_contact", "created_at", "updated_at"}
	attendanceColumns = []string{"attendance_id", "check_in", "check_out", "member_id", "owner", "created_at", "updated_at"}
	serviceColumns    = []string{"service_id", "start_time", "end_time", "location", "attendance", "speaker", "theme", "churchday", "owner", "created_at", "updated_at"}
	churchdayColumns  = []string{"churchday_id", "attendance", "speaker", "comment", "service_type", "owner", "service", "created_at", "updated_at"}
)

// MockAdminUser creates the admin account used by most handler tests
func MockAdminUser() models.User {
	return models.User{
		User_ID:     MockAdminID,
		Name:        "Admin User",
		Email:       "admin@example.com",
		Role:        models.RoleAdmin,
		Is_Verified: true,
		Created_At:  time.Now(),
		Updated_At:  time.Now(),
	}
}

// MockUser creates a non-admin account
func MockUser() models.User {
	return models.User{
		User_ID:    MockUserID,
		Name:       "Test User",
		Email:      "test@example.com",
		Role:       models.RoleUser,
		Created_At: time.Now(),
		Updated_At: time.Now(),
	}
}

// MockUserWithPassword returns MockUser with a bcrypt hash of password
func MockUserWithPassword(password string) models.User {
	user := MockUser()
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user.Password = string(hashed)
	return user
}

func MockMember() models.Member {
	return models.Member{
		Member_ID:           MockMemberID,
		Surname:             "Doe",
		Other_Names:         "John",
		Email:               "john@example.com",
		Phone:               "0800000000",
		Address:             "1 Church Road",
		Age:                 34,
		Gender:              models.GenderMale,
		Marital_Status:      "married",
		Number_Of_Children:  2,
		Ministry_Membership: "Men's",
		Created_At:          time.Now(),
		Updated_At:          time.Now(),
	}
}

func MockService(start, end *time.Time) models.Service {
	return models.Service{
		Service_ID: MockServiceID,
		Start_Time: start,
		End_Time:   end,
		Location:   "Main Hall",
		Attendance: 120,
		Churchday:  MockChurchdayID,
		Owner:      MockAdminID,
		Created_At: time.Now(),
		Updated_At: time.Now(),
	}
}

func MockChurchday() models.Churchday {
	return models.Churchday{
		Churchday_ID: MockChurchdayID,
		Speaker:      "Pastor Ade",
		Service_Type: models.ServiceTypeSunday,
		Owner:        MockAdminID,
		Created_At:   time.Now(),
		Updated_At:   time.Now(),
	}
}

func MockAttendance(id string, checkIn, checkOut *time.Time) models.Attendance {
	return models.Attendance{
		Attendance_ID: id,
		Check_In:      checkIn,
		Check_Out:     checkOut,
		Member_ID:     MockMemberID,
		Owner:         MockAdminID,
		Created_At:    time.Now(),
		Updated_At:    time.Now(),
	}
}

func UserRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumns)
	for _, u := range users {
		rows.AddRow(u.User_ID, u.Name, u.Email, u.Password, u.Role, u.Is_Verified, u.Verification_Token,
			timeValue(u.Verified_At), u.Created_At, u.Updated_At)
	}
	return rows
}

func MemberRows(members ...models.Member) *sqlmock.Rows {
	rows := sqlmock.NewRows(memberColumns)
	for _, m := range members {
		rows.AddRow(m.Member_ID, m.Surname, m.Other_Names, m.Email, m.Phone, m.Address, m.Age, m.Gender,
			m.Occupation, m.Marital_Status, m.Number_Of_Children, m.Spouse_Name, m.Saved_Or_Not,
			m.Baptism_Status, timeValue(m.Baptism_Date), m.Faith_Declaration_Status, m.Ministry_Membership,
			m.Emergency_Contact, m.Created_At, m.Updated_At)
	}
	return rows
}

func AttendanceRows(records ...models.Attendance) *sqlmock.Rows {
	rows := sqlmock.NewRows(attendanceColumns)
	for _, a := range records {
		rows.AddRow(a.Attendance_ID, timeValue(a.Check_In), timeValue(a.Check_Out), a.Member_ID, a.Owner,
			a.Created_At, a.Updated_At)
	}
	return rows
}

func ServiceRows(services ...models.Service) *sqlmock.Rows {
	rows := sqlmock.NewRows(serviceColumns)
	for _, s := range services {
		rows.AddRow(s.Service_ID, timeValue(s.Start_Time), timeValue(s.End_Time), s.Location, s.Attendance,
			s.Speaker, s.Theme, s.Churchday, s.Owner, s.Created_At, s.Updated_At)
	}
	return rows
}

func ChurchdayRows(days ...models.Churchday) *sqlmock.Rows {
	rows := sqlmock.NewRows(churchdayColumns)
	for _, d := range days {
		var attendance, service driver.Value
		if d.Attendance != nil {
			attendance = int64(*d.Attendance)
		}
		if d.Service != nil {
			service = *d.Service
		}
		rows.AddRow(d.Churchday_ID, attendance, d.Speaker, d.Comment, d.Service_Type, d.Owner, service,
			d.Created_At, d.Updated_At)
	}
	return rows
}

func CountRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func timeValue(t *time.Time) driver.Value {
	if t == nil {
		return nil
	}
	return *t
}
