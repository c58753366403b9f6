package model

import (
	"time"
)

type Patient struct {
	ID        string    `db:"patient_id" json:"patient_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Age       int       `db:"age" json:"age"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type RegisterPatientRequest struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Age      int    `json:"age" validate:"required,min=0,max=150"`
	Email    string `json:"email" validate:"required,email"`
}
