package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const attendanceTable = "attendance"

// now is swapped in tests.
var now = time.Now

func ListAttendance(ctx context.Context) ([]models.Attendance, error) {
	records := []models.Attendance{}
	err := initializers.DB.From(attendanceTable).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(ctx, &records)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

func GetAttendance(ctx context.Context, id string) (models.Attendance, error) {
	var record models.Attendance
	if !isUUID(id) {
		return record, NotFoundf("No attendance record with id %s", id)
	}

	found, err := initializers.DB.From(attendanceTable).
		Where(goqu.C("attendance_id").Eq(id)).
		ScanStructContext(ctx, &record)
	if err != nil {
		return record, fmt.Errorf("get attendance %s: %w", id, err)
	}
	if !found {
		return record, NotFoundf("No attendance record with id %s", id)
	}
	return record, nil
}

// ValidateAttendanceTimes normalizes a check-in/check-out pair. A bare
// request becomes a check-in at the current time; a check-out needs a
// check-in at or before it.
func ValidateAttendanceTimes(checkIn, checkOut *time.Time) (*time.Time, *time.Time, error) {
	if checkIn == nil && checkOut == nil {
		t := now().UTC()
		return &t, nil, nil
	}
	if checkIn == nil {
		return nil, nil, Validationf("check_out requires a check_in")
	}
	if checkOut != nil && checkOut.Before(*checkIn) {
		return nil, nil, Validationf("check_out must not be before check_in")
	}
	return checkIn, checkOut, nil
}

// RecordAttendance adds a ledger entry for an existing member. A member may
// hold at most one open session.
func RecordAttendance(ctx context.Context, body models.AttendanceCreate, owner string) (models.Attendance, error) {
	checkIn, checkOut, err := ValidateAttendanceTimes(body.Check_In, body.Check_Out)
	if err != nil {
		return models.Attendance{}, err
	}

	exists, err := MemberExists(ctx, body.Member_ID)
	if err != nil {
		return models.Attendance{}, err
	}
	if !exists {
		return models.Attendance{}, Validationf("No member with id %s", body.Member_ID)
	}

	if checkOut == nil {
		open, err := CountOpenSessions(ctx, body.Member_ID)
		if err != nil {
			return models.Attendance{}, err
		}
		if open > 0 {
			initializers.OpenSessionConflicts.Inc()
			return models.Attendance{}, Conflictf("Member %s is already checked in", body.Member_ID)
		}
	}

	record := models.Attendance{
		Attendance_ID: uuid.NewString(),
		Check_In:      checkIn,
		Check_Out:     checkOut,
		Member_ID:     body.Member_ID,
		Owner:         owner,
	}

	_, err = initializers.DB.Insert(attendanceTable).Rows(record).Executor().ExecContext(ctx)
	if err != nil {
		// the partial unique index catches check-ins racing past the pre-check
		if _, dup := uniqueViolationOn(err); dup {
			initializers.OpenSessionConflicts.Inc()
			return models.Attendance{}, Conflictf("Member %s is already checked in", body.Member_ID)
		}
		return models.Attendance{}, fmt.Errorf("insert attendance: %w", err)
	}

	initializers.CheckInsRecorded.Inc()
	t := now()
	record.Created_At, record.Updated_At = t, t
	return record, nil
}

// CheckOut closes an open session.
func CheckOut(ctx context.Context, id string, at *time.Time) (models.Attendance, error) {
	record, err := GetAttendance(ctx, id)
	if err != nil {
		return record, err
	}
	if record.Check_In == nil {
		return record, Validationf("Attendance record %s has no check_in", id)
	}
	if record.Check_Out != nil {
		return record, Conflictf("Attendance record %s is already checked out", id)
	}

	checkOut := now().UTC()
	if at != nil {
		checkOut = *at
	}
	if checkOut.Before(*record.Check_In) {
		return record, Validationf("check_out must not be before check_in")
	}

	res, err := initializers.DB.Update(attendanceTable).
		Set(goqu.Record{"check_out": checkOut, "updated_at": goqu.L("NOW()")}).
		Where(goqu.C("attendance_id").Eq(id), goqu.C("check_out").IsNull()).
		Executor().ExecContext(ctx)
	if err != nil {
		return record, fmt.Errorf("check out %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return record, Conflictf("Attendance record %s is already checked out", id)
	}

	record.Check_Out = &checkOut
	record.Updated_At = now()
	return record, nil
}

func DeleteAttendance(ctx context.Context, id string) (models.Attendance, error) {
	record, err := GetAttendance(ctx, id)
	if err != nil {
		return record, err
	}

	res, err := initializers.DB.Delete(attendanceTable).
		Where(goqu.C("attendance_id").Eq(id)).
		Executor().ExecContext(ctx)
	if err != nil {
		return record, fmt.Errorf("delete attendance %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return record, NotFoundf("No attendance record with id %s", id)
	}
	return record, nil
}

// CountOpenSessions counts records with a check-in and no check-out. An
// empty memberID counts across all members.
func CountOpenSessions(ctx context.Context, memberID string) (int64, error) {
	query := initializers.DB.From(attendanceTable).
		Where(goqu.C("check_in").IsNotNull(), goqu.C("check_out").IsNull())
	if memberID != "" {
		query = query.Where(goqu.C("member_id").Eq(memberID))
	}
	count, err := query.CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("count open sessions: %w", err)
	}
	return count, nil
}

// attendanceBetween loads the ledger entries whose session can overlap
// [start, end].
func attendanceBetween(ctx context.Context, start, end time.Time) ([]models.Attendance, error) {
	records := []models.Attendance{}
	err := initializers.DB.From(attendanceTable).
		Where(
			goqu.C("check_in").IsNotNull(),
			goqu.C("check_in").Lte(end),
			goqu.Or(
				goqu.C("check_out").Gte(start),
				goqu.And(goqu.C("check_out").IsNull(), goqu.C("check_in").Gte(start)),
			),
		).
		Order(goqu.C("check_in").Asc()).
		ScanStructsContext(ctx, &records)
	if err != nil {
		return nil, fmt.Errorf("load attendance window: %w", err)
	}
	return records, nil
}
