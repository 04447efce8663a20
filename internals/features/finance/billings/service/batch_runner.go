// file: internals/features/finance/billings/service/batch_runner.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	billingModel "sekolahku_backend/internals/features/finance/billings/model"
	pricingModel "sekolahku_backend/internals/features/finance/pricing/model"
	pricingService "sekolahku_backend/internals/features/finance/pricing/service"
)

/* =======================================================
   HASIL BATCH
======================================================= */

type BatchFailure struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	Reason       string    `json:"reason"`
}

type BatchResult struct {
	Generated int            `json:"generated"`
	Skipped   int            `json:"skipped"`
	Failed    []BatchFailure `json:"failed"`
}

// CycleItem: satu enrollment + konteks yang dibutuhkan generator.
type CycleItem struct {
	Enrollment      academicsModel.EnrollmentModel
	Class           *academicsModel.SchoolClassModel
	Session         academicsModel.AcademicSessionModel
	ExistingPeriods map[Period]bool
}

// ResolveFunc / InsertChargeFunc: jahitan untuk test tanpa DB.
// InsertChargeFunc return false kalau periode sudah ada (conflict → skip benign).
type ResolveFunc func(ctx context.Context, item CycleItem) (*pricingModel.PriceRuleModel, error)
type InsertChargeFunc func(ctx context.Context, ch billingModel.ChargeModel) (bool, error)

/* =======================================================
   BATCH RUNNER
======================================================= */

type BatchRunner struct {
	DB       *gorm.DB
	Resolver *pricingService.PriceResolver
	Workers  int
}

func NewBatchRunner(db *gorm.DB, workers int) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{
		DB:       db,
		Resolver: pricingService.NewPriceResolver(db),
		Workers:  workers,
	}
}

// RunCycle menagih semua enrollment aktif tenant yang session-nya mencakup
// (targetYear, targetMonth). Tiap enrollment diproses terisolasi: satu course
// yang salah konfigurasi tidak boleh memblokir tagihan sekolah lainnya.
func (r *BatchRunner) RunCycle(ctx context.Context, schoolID uuid.UUID, targetYear, targetMonth int) (BatchResult, error) {
	if targetMonth < 1 || targetMonth > 12 {
		return BatchResult{}, fmt.Errorf("invalid target month %d", targetMonth)
	}
	targetDate := time.Date(targetYear, time.Month(targetMonth), 1, 0, 0, 0, 0, time.UTC)

	items, err := r.loadCycleItems(ctx, schoolID, targetDate)
	if err != nil {
		return BatchResult{}, err
	}

	target := Period{Year: targetYear, Month: targetMonth}
	return r.runItems(ctx, items, target, r.resolveItem, r.insertCharge), nil
}

// loadCycleItems mengambil enrollment aktif + session + kelas + periode charge
// yang sudah ada, sekali jalan di depan supaya worker tidak saling menunggu.
func (r *BatchRunner) loadCycleItems(ctx context.Context, schoolID uuid.UUID, targetDate time.Time) ([]CycleItem, error) {
	db := r.DB.WithContext(ctx)

	var sessions []academicsModel.AcademicSessionModel
	if err := db.
		Where("academic_session_school_id = ?", schoolID).
		Where("academic_session_start_date <= ? AND academic_session_end_date >= ?", targetDate, targetDate).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	sessionByID := make(map[uuid.UUID]academicsModel.AcademicSessionModel, len(sessions))
	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		sessionByID[s.AcademicSessionID] = s
		sessionIDs = append(sessionIDs, s.AcademicSessionID)
	}

	var enrollments []academicsModel.EnrollmentModel
	if err := db.
		Where("enrollment_school_id = ? AND enrollment_status = ?", schoolID, academicsModel.EnrollmentStatusActive).
		Where("enrollment_session_id IN ?", sessionIDs).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, nil
	}

	classIDs := make([]uuid.UUID, 0, len(enrollments))
	studentIDs := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		classIDs = append(classIDs, e.EnrollmentClassID)
		studentIDs = append(studentIDs, e.EnrollmentStudentID)
	}

	var classes []academicsModel.SchoolClassModel
	if err := db.Where("class_id IN ?", classIDs).Find(&classes).Error; err != nil {
		return nil, err
	}
	classByID := make(map[uuid.UUID]academicsModel.SchoolClassModel, len(classes))
	for _, c := range classes {
		classByID[c.ClassID] = c
	}

	var charges []billingModel.ChargeModel
	if err := db.
		Select("charge_student_id", "charge_billing_year", "charge_billing_month").
		Where("charge_school_id = ? AND charge_student_id IN ?", schoolID, studentIDs).
		Find(&charges).Error; err != nil {
		return nil, err
	}
	existingByStudent := make(map[uuid.UUID]map[Period]bool)
	for _, ch := range charges {
		m := existingByStudent[ch.ChargeStudentID]
		if m == nil {
			m = make(map[Period]bool)
			existingByStudent[ch.ChargeStudentID] = m
		}
		m[Period{Year: ch.ChargeBillingYear, Month: ch.ChargeBillingMonth}] = true
	}

	items := make([]CycleItem, 0, len(enrollments))
	for _, e := range enrollments {
		item := CycleItem{
			Enrollment:      e,
			Session:         sessionByID[e.EnrollmentSessionID],
			ExistingPeriods: existingByStudent[e.EnrollmentStudentID],
		}
		if cls, ok := classByID[e.EnrollmentClassID]; ok {
			c := cls
			item.Class = &c
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *BatchRunner) resolveItem(ctx context.Context, item CycleItem) (*pricingModel.PriceRuleModel, error) {
	year := NominalBillingYear(item.Class, item.Session)
	if item.Class != nil {
		cid := item.Class.ClassID
		return r.Resolver.Resolve(ctx, item.Enrollment.EnrollmentSchoolID, year, item.Class.ClassCourseID, &cid)
	}
	// kelas tidak ketemu → coba cascade dari class id enrollment saja
	cid := item.Enrollment.EnrollmentClassID
	return r.Resolver.Resolve(ctx, item.Enrollment.EnrollmentSchoolID, year, nil, &cid)
}

// insertCharge: insert-if-absent. Conflict di uq_charges_period = periode sudah
// tertagih (mis. dua worker balapan) → bukan error, return false.
func (r *BatchRunner) insertCharge(ctx context.Context, ch billingModel.ChargeModel) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "charge_school_id"},
				{Name: "charge_student_id"},
				{Name: "charge_billing_year"},
				{Name: "charge_billing_month"},
			},
			DoNothing: true,
		}).
		Create(&ch)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// runItems: worker pool terbatas. Tidak ada shared state antar worker selain
// hasil (di bawah mutex); unique index charges jadi titik serialisasi insert.
func (r *BatchRunner) runItems(ctx context.Context, items []CycleItem, target Period, resolve ResolveFunc, insert InsertChargeFunc) BatchResult {
	// verifikasi ulang duplikat enrollment aktif (precondition, jangan diasumsikan)
	dupes := duplicateActiveEnrollments(items)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result BatchResult
	)
	sem := make(chan struct{}, r.Workers)

	fail := func(id uuid.UUID, reason string) {
		mu.Lock()
		result.Failed = append(result.Failed, BatchFailure{EnrollmentID: id, Reason: reason})
		mu.Unlock()
	}

	for _, item := range items {
		enrID := item.Enrollment.EnrollmentID

		if dupes[enrID] {
			fail(enrID, "duplicate active enrollment for student in session")
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(item CycleItem, enrID uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			rule, err := resolve(ctx, item)
			if err != nil {
				if errors.Is(err, pricingService.ErrPriceRuleNotFound) {
					fail(enrID, "pricing not configured")
				} else {
					fail(enrID, err.Error())
				}
				return
			}

			charges, err := Generate(GenerateInput{
				Enrollment:      item.Enrollment,
				Rule:            rule,
				Class:           item.Class,
				Session:         item.Session,
				ExistingPeriods: item.ExistingPeriods,
				Mode:            ModeCurrentMonthOnly,
				Current:         target,
			})
			if err != nil {
				fail(enrID, err.Error())
				return
			}

			if len(charges) == 0 {
				mu.Lock()
				result.Skipped++
				mu.Unlock()
				return
			}

			for _, ch := range charges {
				inserted, err := insert(ctx, ch)
				if err != nil {
					fail(enrID, err.Error())
					return
				}
				mu.Lock()
				if inserted {
					result.Generated++
				} else {
					result.Skipped++ // sudah tertagih (race antar worker / run sebelumnya)
				}
				mu.Unlock()
			}
		}(item, enrID)
	}

	wg.Wait()
	return result
}

// duplicateActiveEnrollments menandai SEMUA enrollment yang share
// (student, session) — dua-duanya ditolak, biar operator yang membereskan.
func duplicateActiveEnrollments(items []CycleItem) map[uuid.UUID]bool {
	type key struct{ student, session uuid.UUID }
	byKey := make(map[key][]uuid.UUID)
	for _, it := range items {
		k := key{it.Enrollment.EnrollmentStudentID, it.Enrollment.EnrollmentSessionID}
		byKey[k] = append(byKey[k], it.Enrollment.EnrollmentID)
	}
	out := make(map[uuid.UUID]bool)
	for _, ids := range byKey {
		if len(ids) > 1 {
			for _, id := range ids {
				out[id] = true
			}
		}
	}
	return out
}
