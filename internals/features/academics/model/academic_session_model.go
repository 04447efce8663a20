// file: internals/features/academics/model/academic_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicSessionModel: satu tahun ajaran (rentang tanggal luar untuk generate tagihan).
// Label boleh memuat token tahun 4 digit, mis. "TA 2025/2026" → fallback billing year.
type AcademicSessionModel struct {
	AcademicSessionID       uuid.UUID `json:"academic_session_id" gorm:"column:academic_session_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AcademicSessionSchoolID uuid.UUID `json:"academic_session_school_id" gorm:"column:academic_session_school_id;type:uuid;not null;index:idx_academic_sessions_school"`

	AcademicSessionLabel     string    `json:"academic_session_label" gorm:"column:academic_session_label;type:varchar(60);not null"`
	AcademicSessionStartDate time.Time `json:"academic_session_start_date" gorm:"column:academic_session_start_date;type:date;not null"`
	AcademicSessionEndDate   time.Time `json:"academic_session_end_date" gorm:"column:academic_session_end_date;type:date;not null"`

	AcademicSessionCreatedAt time.Time      `json:"academic_session_created_at" gorm:"column:academic_session_created_at;type:timestamptz;not null;autoCreateTime"`
	AcademicSessionUpdatedAt time.Time      `json:"academic_session_updated_at" gorm:"column:academic_session_updated_at;type:timestamptz;not null;autoUpdateTime"`
	AcademicSessionDeletedAt gorm.DeletedAt `json:"academic_session_deleted_at,omitempty" gorm:"column:academic_session_deleted_at;type:timestamptz;index"`
}

func (AcademicSessionModel) TableName() string { return "academic_sessions" }
