// file: internals/features/academics/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- ENUM enrollment_status ---------------------------------------------------
type EnrollmentStatus string

const (
	EnrollmentStatusActive      EnrollmentStatus = "active"
	EnrollmentStatusLocked      EnrollmentStatus = "locked"
	EnrollmentStatusTransferred EnrollmentStatus = "transferred"
	EnrollmentStatusWithdrawn   EnrollmentStatus = "withdrawn"
)

// --- MODEL enrollments --------------------------------------------------------
// Dibuat oleh alur pendaftaran (di luar engine billing); engine hanya membaca.
// Invariant: maksimal satu enrollment 'active' per (student, session) —
// dijaga partial unique index di SQL migrasi, dan diverifikasi ulang oleh runner.
type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `json:"enrollment_id" gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey"`
	EnrollmentSchoolID uuid.UUID `json:"enrollment_school_id" gorm:"column:enrollment_school_id;type:uuid;not null;index:idx_enrollments_school_status,priority:1"`

	EnrollmentStudentID uuid.UUID `json:"enrollment_student_id" gorm:"column:enrollment_student_id;type:uuid;not null;index:uq_enrollments_student_session_active,unique,priority:1,where:enrollment_status = 'active' AND enrollment_deleted_at IS NULL"`
	EnrollmentClassID   uuid.UUID `json:"enrollment_class_id" gorm:"column:enrollment_class_id;type:uuid;not null;index"`
	EnrollmentSessionID uuid.UUID `json:"enrollment_session_id" gorm:"column:enrollment_session_id;type:uuid;not null;index:uq_enrollments_student_session_active,unique,priority:2,where:enrollment_status = 'active' AND enrollment_deleted_at IS NULL"`

	EnrollmentDate   time.Time        `json:"enrollment_date" gorm:"column:enrollment_date;type:date;not null"`
	EnrollmentStatus EnrollmentStatus `json:"enrollment_status" gorm:"column:enrollment_status;type:varchar(20);not null;default:'active';index:idx_enrollments_school_status,priority:2"`

	EnrollmentCreatedAt time.Time      `json:"enrollment_created_at" gorm:"column:enrollment_created_at;type:timestamptz;not null;autoCreateTime"`
	EnrollmentUpdatedAt time.Time      `json:"enrollment_updated_at" gorm:"column:enrollment_updated_at;type:timestamptz;not null;autoUpdateTime"`
	EnrollmentDeletedAt gorm.DeletedAt `json:"enrollment_deleted_at,omitempty" gorm:"column:enrollment_deleted_at;type:timestamptz;index"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
