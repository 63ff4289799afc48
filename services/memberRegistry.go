package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const memberTable = "member"

func ListMembers(ctx context.Context) ([]models.Member, error) {
	members := []models.Member{}
	err := initializers.DB.From(memberTable).
		Order(goqu.C("created_at").Asc()).
		ScanStructsContext(ctx, &members)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func GetMember(ctx context.Context, id string) (models.Member, error) {
	var member models.Member
	if !isUUID(id) {
		return member, NotFoundf("No member with id %s", id)
	}

	found, err := initializers.DB.From(memberTable).
		Where(goqu.C("member_id").Eq(id)).
		ScanStructContext(ctx, &member)
	if err != nil {
		return member, fmt.Errorf("get member %s: %w", id, err)
	}
	if !found {
		return member, NotFoundf("No member with id %s", id)
	}
	return member, nil
}

func CreateMember(ctx context.Context, body models.MemberCreate) (models.Member, error) {
	email := normalizeEmail(body.Email)
	if err := ensureMemberEmailFree(ctx, email, ""); err != nil {
		return models.Member{}, err
	}

	baptismDate, err := parseDate("baptism_date", body.Baptism_Date)
	if err != nil {
		return models.Member{}, err
	}

	member := models.Member{
		Member_ID:                uuid.NewString(),
		Surname:                  strings.TrimSpace(body.Surname),
		Other_Names:              strings.TrimSpace(body.Other_Names),
		Email:                    email,
		Phone:                    body.Phone,
		Address:                  strings.TrimSpace(body.Address),
		Age:                      body.Age,
		Gender:                   body.Gender,
		Occupation:               body.Occupation,
		Marital_Status:           body.Marital_Status,
		Number_Of_Children:       body.Number_Of_Children,
		Spouse_Name:              body.Spouse_Name,
		Saved_Or_Not:             body.Saved_Or_Not,
		Baptism_Status:           body.Baptism_Status,
		Baptism_Date:             baptismDate,
		Faith_Declaration_Status: body.Faith_Declaration_Status,
		Ministry_Membership:      body.Ministry_Membership,
		Emergency_Contact:        body.Emergency_Contact,
	}

	_, err = initializers.DB.Insert(memberTable).Rows(member).Executor().ExecContext(ctx)
	if err != nil {
		if _, dup := uniqueViolationOn(err); dup {
			return models.Member{}, Validationf("Email %s is already registered to a member", email)
		}
		return models.Member{}, fmt.Errorf("insert member: %w", err)
	}

	now := time.Now()
	member.Created_At, member.Updated_At = now, now
	return member, nil
}

// UpdateMember applies only the fields present in body.
func UpdateMember(ctx context.Context, id string, body models.MemberUpdate) (models.Member, error) {
	current, err := GetMember(ctx, id)
	if err != nil {
		return current, err
	}

	record := goqu.Record{}
	setString := func(column string, v *string) {
		if v != nil {
			record[column] = strings.TrimSpace(*v)
		}
	}
	setString("surname", body.Surname)
	setString("other_names", body.Other_Names)
	setString("phone", body.Phone)
	setString("address", body.Address)
	setString("gender", body.Gender)
	setString("occupation", body.Occupation)
	setString("marital_status", body.Marital_Status)
	setString("spouse_name", body.Spouse_Name)
	setString("ministry_membership", body.Ministry_Membership)
	setString("emergency_contact", body.Emergency_Contact)

	if body.Email != nil {
		email := normalizeEmail(*body.Email)
		if err := ensureMemberEmailFree(ctx, email, id); err != nil {
			return models.Member{}, err
		}
		record["email"] = email
	}
	if body.Age != nil {
		record["age"] = *body.Age
	}
	if body.Number_Of_Children != nil {
		record["number_of_children"] = *body.Number_Of_Children
	}
	if body.Saved_Or_Not != nil {
		record["saved_or_not"] = *body.Saved_Or_Not
	}
	if body.Baptism_Status != nil {
		record["baptism_status"] = *body.Baptism_Status
	}
	if body.Faith_Declaration_Status != nil {
		record["faith_declaration_status"] = *body.Faith_Declaration_Status
	}
	if body.Baptism_Date != nil {
		date, err := parseDate("baptism_date", body.Baptism_Date)
		if err != nil {
			return models.Member{}, err
		}
		if date == nil {
			record["baptism_date"] = nil
		} else {
			record["baptism_date"] = *date
		}
	}

	if len(record) == 0 {
		return current, nil
	}

	record["updated_at"] = goqu.L("NOW()")
	_, err = initializers.DB.Update(memberTable).
		Set(record).
		Where(goqu.C("member_id").Eq(id)).
		Executor().ExecContext(ctx)
	if err != nil {
		if _, dup := uniqueViolationOn(err); dup {
			return models.Member{}, Validationf("Email is already registered to another member")
		}
		return models.Member{}, fmt.Errorf("update member %s: %w", id, err)
	}

	return GetMember(ctx, id)
}

func DeleteMember(ctx context.Context, id string) (models.Member, error) {
	member, err := GetMember(ctx, id)
	if err != nil {
		return member, err
	}

	res, err := initializers.DB.Delete(memberTable).
		Where(goqu.C("member_id").Eq(id)).
		Executor().ExecContext(ctx)
	if err != nil {
		return member, fmt.Errorf("delete member %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return member, NotFoundf("No member with id %s", id)
	}
	return member, nil
}

// MemberExists resolves a weak reference to a member.
func MemberExists(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	count, err := initializers.DB.From(memberTable).
		Where(goqu.C("member_id").Eq(id)).
		CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("resolve member %s: %w", id, err)
	}
	return count > 0, nil
}

func ensureMemberEmailFree(ctx context.Context, email, exceptID string) error {
	where := []exp.Expression{goqu.C("email").Eq(email)}
	if exceptID != "" {
		where = append(where, goqu.C("member_id").Neq(exceptID))
	}
	count, err := initializers.DB.From(memberTable).Where(where...).CountContext(ctx)
	if err != nil {
		return fmt.Errorf("check member email: %w", err)
	}
	if count > 0 {
		return Validationf("Email %s is already registered to a member", email)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD or RFC3339. Empty means unset.
func parseDate(field string, v *string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*v)
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, Validationf("%s must be a date in YYYY-MM-DD format", field)
}
