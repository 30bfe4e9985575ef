package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleTeacher = "TEACHER"
	RoleStaff   = "STAFF"
)

// Employee is the payroll-side registry of teachers and non-teaching
// staff. The role is the only signal payroll approval has for choosing
// between the teacher and staff salary expense heads.
type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName    string    `gorm:"type:varchar(255);not null"`
	Role        string    `gorm:"type:varchar(20);not null;default:'TEACHER';index"`
	Designation *string   `gorm:"type:varchar(120)"`
	Phone       *string   `gorm:"type:varchar(30)"`
	IsActive    bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
