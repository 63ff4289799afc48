package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Member struct {
	Member_ID                string     `json:"_id"`
	Surname                  string     `json:"surname"`
	Other_Names              string     `json:"other_names"`
	Email                    string     `json:"email"`
	Phone                    string     `json:"phone"`
	Address                  string     `json:"address"`
	Age                      int        `json:"age"`
	Gender                   string     `json:"gender"`
	Occupation               string     `json:"occupation"`
	Marital_Status           string     `json:"marital_status"`
	Number_Of_Children       int        `json:"number_of_children"`
	Spouse_Name              string     `json:"spouse_name"`
	Saved_Or_Not             bool       `json:"saved_or_not"`
	Baptism_Status           bool       `json:"baptism_status"`
	Baptism_Date             *time.Time `json:"baptism_date"`
	Faith_Declaration_Status bool       `json:"faith_declaration_status"`
	Ministry_Membership      string     `json:"ministry_membership"`
	Emergency_Contact        string     `json:"emergency_contact"`
	Created_At               time.Time  `json:"createdAt" goqu:"skipinsert,skipupdate"`
	Updated_At               time.Time  `json:"updatedAt" goqu:"skipinsert,skipupdate"`
}

// MemberCreate mirrors the admin "Add Member" form. Baptism_Date is a plain
// YYYY-MM-DD string, empty when unknown.
type MemberCreate struct {
	Surname                  string  `json:"surname" binding:"required,notblank"`
	Other_Names              string  `json:"other_names" binding:"required,notblank"`
	Email                    string  `json:"email" binding:"required,email"`
	Phone                    string  `json:"phone"`
	Address                  string  `json:"address" binding:"required,notblank"`
	Age                      int     `json:"age" binding:"gte=0,lte=150"`
	Gender                   string  `json:"gender" binding:"required,oneof=male female"`
	Occupation               string  `json:"occupation"`
	Marital_Status           string  `json:"marital_status" binding:"required,oneof=single married divorced separated"`
	Number_Of_Children       int     `json:"number_of_children" binding:"gte=0"`
	Spouse_Name              string  `json:"spouse_name"`
	Saved_Or_Not             bool    `json:"saved_or_not"`
	Baptism_Status           bool    `json:"baptism_status"`
	Baptism_Date             *string `json:"baptism_date"`
	Faith_Declaration_Status bool    `json:"faith_declaration_status"`
	Ministry_Membership      string  `json:"ministry_membership" binding:"required,ministry"`
	Emergency_Contact        string  `json:"emergency_contact"`
}

// MemberUpdate is a partial update: nil fields are left untouched.
type MemberUpdate struct {
	Surname                  *string `json:"surname" binding:"omitnil,notblank"`
	Other_Names              *string `json:"other_names" binding:"omitnil,notblank"`
	Email                    *string `json:"email" binding:"omitempty,email"`
	Phone                    *string `json:"phone"`
	Address                  *string `json:"address" binding:"omitnil,notblank"`
	Age                      *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	Gender                   *string `json:"gender" binding:"omitempty,oneof=male female"`
	Occupation               *string `json:"occupation"`
	Marital_Status           *string `json:"marital_status" binding:"omitempty,oneof=single married divorced separated"`
	Number_Of_Children       *int    `json:"number_of_children" binding:"omitempty,gte=0"`
	Spouse_Name              *string `json:"spouse_name"`
	Saved_Or_Not             *bool   `json:"saved_or_not"`
	Baptism_Status           *bool   `json:"baptism_status"`
	Baptism_Date             *string `json:"baptism_date"`
	Faith_Declaration_Status *bool   `json:"faith_declaration_status"`
	Ministry_Membership      *string `json:"ministry_membership" binding:"omitempty,ministry"`
	Emergency_Contact        *string `json:"emergency_contact"`
}

// MinistryMemberships lists the accepted ministry_membership values. They
// contain apostrophes, so they cannot be expressed with a oneof tag.
var MinistryMemberships = []string{"Men's", "Women's", "Children's", "Other"}

func IsMinistryMembership(v string) bool {
	for _, m := range MinistryMemberships {
		if m == v {
			return true
		}
	}
	return false
}
