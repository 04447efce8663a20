// file: internals/features/finance/pricing/service/price_resolver.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	pricingModel "sekolahku_backend/internals/features/finance/pricing/model"
)

// ErrPriceRuleNotFound: kondisi bisnis ("pricing belum dikonfigurasi"),
// bukan fault sistem. Caller wajib merendernya sebagai 404, jangan default 0.
var ErrPriceRuleNotFound = errors.New("price rule not found")

// RuleKey: satu kandidat lookup dalam cascade. Nil = kolom harus NULL.
type RuleKey struct {
	CourseID *uuid.UUID
	ClassID  *uuid.UUID
}

// CascadeKeys menyusun kandidat dari paling spesifik ke paling umum:
//
//	(course, class) → (course, NULL) → (NULL, class) → (NULL, NULL)
//
// Kandidat yang butuh course/class tapi tidak punya nilainya dilewati.
// Pure function — urutan precedence bisa dites tanpa DB.
func CascadeKeys(courseID, classID *uuid.UUID) []RuleKey {
	keys := make([]RuleKey, 0, 4)
	if courseID != nil && classID != nil {
		keys = append(keys, RuleKey{CourseID: courseID, ClassID: classID})
	}
	if courseID != nil {
		keys = append(keys, RuleKey{CourseID: courseID})
	}
	if classID != nil {
		keys = append(keys, RuleKey{ClassID: classID})
	}
	keys = append(keys, RuleKey{}) // rule umum tenant
	return keys
}

type PriceResolver struct {
	DB *gorm.DB
}

func NewPriceResolver(db *gorm.DB) *PriceResolver {
	return &PriceResolver{DB: db}
}

// Resolve mengembalikan rule paling spesifik yang ada, evaluasi berurutan,
// first-hit wins. Tidak pernah menggabung/merata-rata partial match.
func (r *PriceResolver) Resolve(ctx context.Context, schoolID uuid.UUID, academicYear int, courseID, classID *uuid.UUID) (*pricingModel.PriceRuleModel, error) {
	for _, key := range CascadeKeys(courseID, classID) {
		q := r.DB.WithContext(ctx).
			Where("price_rule_school_id = ? AND price_rule_academic_year = ?", schoolID, academicYear)

		if key.CourseID != nil {
			q = q.Where("price_rule_course_id = ?", *key.CourseID)
		} else {
			q = q.Where("price_rule_course_id IS NULL")
		}
		if key.ClassID != nil {
			q = q.Where("price_rule_class_id = ?", *key.ClassID)
		} else {
			q = q.Where("price_rule_class_id IS NULL")
		}

		var rule pricingModel.PriceRuleModel
		err := q.First(&rule).Error
		if err == nil {
			return &rule, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, ErrPriceRuleNotFound
}

// ResolveForClass melengkapi course/class dari linkage kelas enrollment dulu
// (kalau belum diketahui caller), baru jalankan cascade.
func (r *PriceResolver) ResolveForClass(ctx context.Context, schoolID uuid.UUID, academicYear int, classID uuid.UUID) (*pricingModel.PriceRuleModel, error) {
	var cls academicsModel.SchoolClassModel
	err := r.DB.WithContext(ctx).
		Where("class_id = ? AND class_school_id = ?", classID, schoolID).
		First(&cls).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// kelas tidak dikenal → hanya rule umum yang mungkin kena
			return r.Resolve(ctx, schoolID, academicYear, nil, nil)
		}
		return nil, err
	}
	cid := cls.ClassID
	return r.Resolve(ctx, schoolID, academicYear, cls.ClassCourseID, &cid)
}
