// file: internals/features/academics/model/school_class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolClassModel: kelas/rombel. Course nullable (kelas umum tanpa course),
// academic year eksplisit nullable → fallback ke label/tanggal session saat billing.
type SchoolClassModel struct {
	ClassID       uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassSchoolID uuid.UUID `json:"class_school_id" gorm:"column:class_school_id;type:uuid;not null;index:idx_classes_school"`

	ClassName         string     `json:"class_name" gorm:"column:class_name;type:varchar(80);not null"`
	ClassCourseID     *uuid.UUID `json:"class_course_id,omitempty" gorm:"column:class_course_id;type:uuid;index"`
	ClassAcademicYear *int       `json:"class_academic_year,omitempty" gorm:"column:class_academic_year;type:smallint"`

	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;type:timestamptz;index"`
}

func (SchoolClassModel) TableName() string { return "classes" }
