package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	serviceTable   = "service"
	churchdayTable = "churchday"
)

func CreateChurchday(ctx context.Context, body models.ChurchdayCreate, owner string) (models.Churchday, error) {
	day := models.Churchday{
		Churchday_ID: uuid.NewString(),
		Attendance:   body.Attendance,
		Speaker:      strings.TrimSpace(body.Speaker),
		Comment:      strings.TrimSpace(body.Comment),
		Service_Type: body.Service_Type,
		Owner:        owner,
	}

	_, err := initializers.DB.Insert(churchdayTable).Rows(day).Executor().ExecContext(ctx)
	if err != nil {
		return models.Churchday{}, fmt.Errorf("insert churchday: %w", err)
	}

	t := now()
	day.Created_At, day.Updated_At = t, t
	return day, nil
}

// CreateService registers a service under an existing church day and points
// the day's back-reference at it.
func CreateService(ctx context.Context, body models.ServiceCreate, owner string) (models.Service, error) {
	location := strings.TrimSpace(body.Location)
	if location == "" {
		return models.Service{}, Validationf("location is required")
	}
	if body.Start_Time != nil && body.End_Time != nil && body.End_Time.Before(*body.Start_Time) {
		return models.Service{}, Validationf("end_time must not be before start_time")
	}

	if _, err := GetChurchday(ctx, body.Churchday); err != nil {
		if IsNotFound(err) {
			return models.Service{}, Validationf("No church day with id %s", body.Churchday)
		}
		return models.Service{}, err
	}

	attendance := 0
	if body.Attendance != nil {
		attendance = *body.Attendance
	}

	service := models.Service{
		Service_ID: uuid.NewString(),
		Start_Time: body.Start_Time,
		End_Time:   body.End_Time,
		Location:   location,
		Attendance: attendance,
		Speaker:    strings.TrimSpace(body.Speaker),
		Theme:      strings.TrimSpace(body.Theme),
		Churchday:  body.Churchday,
		Owner:      owner,
	}

	_, err := initializers.DB.Insert(serviceTable).Rows(service).Executor().ExecContext(ctx)
	if err != nil {
		return models.Service{}, fmt.Errorf("insert service: %w", err)
	}

	_, err = initializers.DB.Update(churchdayTable).
		Set(goqu.Record{"service": service.Service_ID, "updated_at": goqu.L("NOW()")}).
		Where(goqu.C("churchday_id").Eq(body.Churchday)).
		Executor().ExecContext(ctx)
	if err != nil {
		// the service exists either way; a stale back-reference is tolerated
		initializers.Log.Warnw("failed to link churchday to service",
			"churchday", body.Churchday, "service", service.Service_ID, "error", err)
	}

	t := now()
	service.Created_At, service.Updated_At = t, t
	return service, nil
}

func ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := loadServices(ctx)
	if err != nil {
		return nil, err
	}

	records, err := recordsFor(ctx, services)
	if err != nil {
		return nil, err
	}
	fallback := initializers.Config.DefaultServiceDuration
	for i := range services {
		services[i].Recorded_Attendance = ServiceReport(services[i], records, fallback).Recorded_Attendance
	}
	return services, nil
}

func GetService(ctx context.Context, id string) (models.Service, error) {
	service, err := findService(ctx, id)
	if err != nil {
		return service, err
	}
	report, err := serviceAttendance(ctx, service)
	if err != nil {
		return service, err
	}
	service.Recorded_Attendance = report.Recorded_Attendance
	return service, nil
}

// GetServiceAttendance recomputes the service's attendance from the ledger.
func GetServiceAttendance(ctx context.Context, id string) (models.ServiceAttendanceReport, error) {
	service, err := findService(ctx, id)
	if err != nil {
		return models.ServiceAttendanceReport{}, err
	}
	return serviceAttendance(ctx, service)
}

func serviceAttendance(ctx context.Context, service models.Service) (models.ServiceAttendanceReport, error) {
	records, err := recordsFor(ctx, []models.Service{service})
	if err != nil {
		return models.ServiceAttendanceReport{}, err
	}
	return ServiceReport(service, records, initializers.Config.DefaultServiceDuration), nil
}

func DeleteService(ctx context.Context, id string) (models.Service, error) {
	service, err := findService(ctx, id)
	if err != nil {
		return service, err
	}

	res, err := initializers.DB.Delete(serviceTable).
		Where(goqu.C("service_id").Eq(id)).
		Executor().ExecContext(ctx)
	if err != nil {
		return service, fmt.Errorf("delete service %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service, NotFoundf("No service with id %s", id)
	}
	return service, nil
}

func ListChurchdays(ctx context.Context) ([]models.Churchday, error) {
	days := []models.Churchday{}
	err := initializers.DB.From(churchdayTable).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(ctx, &days)
	if err != nil {
		return nil, fmt.Errorf("list churchdays: %w", err)
	}
	if len(days) == 0 {
		return days, nil
	}

	services, err := loadServices(ctx)
	if err != nil {
		return nil, err
	}
	records, err := recordsFor(ctx, services)
	if err != nil {
		return nil, err
	}
	fallback := initializers.Config.DefaultServiceDuration
	for i := range days {
		days[i].Recorded_Attendance = ChurchdayReport(days[i].Churchday_ID, services, records, fallback).Recorded_Attendance
	}
	return days, nil
}

func GetChurchday(ctx context.Context, id string) (models.Churchday, error) {
	var day models.Churchday
	if !isUUID(id) {
		return day, NotFoundf("No church day with id %s", id)
	}

	found, err := initializers.DB.From(churchdayTable).
		Where(goqu.C("churchday_id").Eq(id)).
		ScanStructContext(ctx, &day)
	if err != nil {
		return day, fmt.Errorf("get churchday %s: %w", id, err)
	}
	if !found {
		return day, NotFoundf("No church day with id %s", id)
	}
	return day, nil
}

// GetChurchdayAttendance recomputes the day's attendance over the services
// that reference it.
func GetChurchdayAttendance(ctx context.Context, id string) (models.ChurchdayAttendanceReport, error) {
	services := []models.Service{}
	err := initializers.DB.From(serviceTable).
		Where(goqu.C("churchday").Eq(id)).
		Order(goqu.C("start_time").Asc()).
		ScanStructsContext(ctx, &services)
	if err != nil {
		return models.ChurchdayAttendanceReport{}, fmt.Errorf("load services of churchday %s: %w", id, err)
	}

	records, err := recordsFor(ctx, services)
	if err != nil {
		return models.ChurchdayAttendanceReport{}, err
	}
	return ChurchdayReport(id, services, records, initializers.Config.DefaultServiceDuration), nil
}

// DeleteChurchday removes the day only. Services keep pointing at it.
func DeleteChurchday(ctx context.Context, id string) (models.Churchday, error) {
	day, err := GetChurchday(ctx, id)
	if err != nil {
		return day, err
	}

	res, err := initializers.DB.Delete(churchdayTable).
		Where(goqu.C("churchday_id").Eq(id)).
		Executor().ExecContext(ctx)
	if err != nil {
		return day, fmt.Errorf("delete churchday %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return day, NotFoundf("No church day with id %s", id)
	}
	return day, nil
}

func findService(ctx context.Context, id string) (models.Service, error) {
	var service models.Service
	if !isUUID(id) {
		return service, NotFoundf("No service with id %s", id)
	}

	found, err := initializers.DB.From(serviceTable).
		Where(goqu.C("service_id").Eq(id)).
		ScanStructContext(ctx, &service)
	if err != nil {
		return service, fmt.Errorf("get service %s: %w", id, err)
	}
	if !found {
		return service, NotFoundf("No service with id %s", id)
	}
	return service, nil
}

func loadServices(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	err := initializers.DB.From(serviceTable).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(ctx, &services)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// recordsFor loads the ledger entries that can count toward services. No
// query runs when none of them has a window.
func recordsFor(ctx context.Context, services []models.Service) ([]models.Attendance, error) {
	env, ok := envelope(services, initializers.Config.DefaultServiceDuration)
	if !ok {
		return nil, nil
	}
	return attendanceBetween(ctx, env.Start, env.End)
}
