// file: internals/features/finance/billings/service/schedule_generator_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	pricingModel "sekolahku_backend/internals/features/finance/pricing/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// session TA 2025/2026: Juli 2025 s.d. Juni 2026
func testSession(schoolID uuid.UUID) academicsModel.AcademicSessionModel {
	return academicsModel.AcademicSessionModel{
		AcademicSessionID:        uuid.New(),
		AcademicSessionSchoolID:  schoolID,
		AcademicSessionLabel:     "TA 2025/2026",
		AcademicSessionStartDate: date(2025, time.July, 1),
		AcademicSessionEndDate:   date(2026, time.June, 30),
	}
}

func testRule(schoolID uuid.UUID, monthlyFee string, dueDay int) *pricingModel.PriceRuleModel {
	return &pricingModel.PriceRuleModel{
		PriceRuleID:           uuid.New(),
		PriceRuleSchoolID:     schoolID,
		PriceRuleAcademicYear: 2025,
		PriceRuleEnrollmentFee: decimal.NewFromInt(500000),
		PriceRuleMonthlyFee:    decimal.RequireFromString(monthlyFee),
		PriceRuleDueDay:        dueDay,
	}
}

func testEnrollment(schoolID uuid.UUID, session academicsModel.AcademicSessionModel, enrolledAt time.Time) academicsModel.EnrollmentModel {
	return academicsModel.EnrollmentModel{
		EnrollmentID:        uuid.New(),
		EnrollmentSchoolID:  schoolID,
		EnrollmentStudentID: uuid.New(),
		EnrollmentClassID:   uuid.New(),
		EnrollmentSessionID: session.AcademicSessionID,
		EnrollmentDate:      enrolledAt,
		EnrollmentStatus:    academicsModel.EnrollmentStatusActive,
	}
}

func TestGenerate_MissingRule(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)

	_, err := Generate(GenerateInput{
		Enrollment: testEnrollment(schoolID, sess, date(2025, time.September, 1)),
		Rule:       nil,
		Session:    sess,
		Mode:       ModeCurrentMonthOnly,
	})
	require.ErrorIs(t, err, ErrMissingPricingRule)
}

func TestGenerate_ProrationMidMonth(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	// masuk 20 September (September = 30 hari), due_day 10 → prorata:
	// 10000 × (30−20+1)/30 = 3666.666… → 3666.67 (half-up, sekali bulatkan)
	enr := testEnrollment(schoolID, sess, date(2025, time.September, 20))

	charges, err := Generate(GenerateInput{
		Enrollment: enr,
		Rule:       rule,
		Session:    sess,
		Mode:       ModeCurrentMonthOnly,
	})
	require.NoError(t, err)
	require.Len(t, charges, 1)

	ch := charges[0]
	assert.Equal(t, "3666.67", ch.ChargeAmount.StringFixed(2))
	assert.Equal(t, 2025, ch.ChargeBillingYear) // nominal dari token label session
	assert.Equal(t, 9, ch.ChargeBillingMonth)
	assert.Equal(t, date(2025, time.September, 10), ch.ChargeDueDate)
	assert.Equal(t, enr.EnrollmentStudentID, ch.ChargeStudentID)
}

func TestGenerate_NoProrationOnOrBeforeDueDay(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	// masuk tepat di due_day → tagihan penuh, bukan prorata
	enr := testEnrollment(schoolID, sess, date(2025, time.September, 10))

	charges, err := Generate(GenerateInput{
		Enrollment: enr,
		Rule:       rule,
		Session:    sess,
		Mode:       ModeCurrentMonthOnly,
	})
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, "10000.00", charges[0].ChargeAmount.StringFixed(2))
}

func TestGenerate_DueDayClampedInShortMonth(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 31)

	// Februari 2026 cuma 28 hari → due date 28 Feb, bukan meluber ke Maret
	enr := testEnrollment(schoolID, sess, date(2026, time.February, 1))

	charges, err := Generate(GenerateInput{
		Enrollment: enr,
		Rule:       rule,
		Session:    sess,
		Mode:       ModeCurrentMonthOnly,
	})
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, date(2026, time.February, 28), charges[0].ChargeDueDate)
}

func TestGenerate_IdempotentRerun(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)
	enr := testEnrollment(schoolID, sess, date(2025, time.September, 20))

	in := GenerateInput{
		Enrollment: enr,
		Rule:       rule,
		Session:    sess,
		Mode:       ModeCurrentMonthOnly,
	}
	first, err := Generate(in)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// run kedua dengan periode yang sudah tertagih → nol charge baru
	in.ExistingPeriods = map[Period]bool{
		{Year: first[0].ChargeBillingYear, Month: first[0].ChargeBillingMonth}: true,
	}
	second, err := Generate(in)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestGenerate_CurrentMonthOnlyWindow(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	// masuk Juli, siklus berjalan September → Juli+Agustus+September = 3 charge
	enr := testEnrollment(schoolID, sess, date(2025, time.July, 1))

	charges, err := Generate(GenerateInput{
		Enrollment: enr,
		Rule:       rule,
		Session:    sess,
		Mode:       ModeCurrentMonthOnly,
		Current:    Period{Year: 2025, Month: 9},
	})
	require.NoError(t, err)
	require.Len(t, charges, 3)
	assert.Equal(t, 7, charges[0].ChargeBillingMonth)
	assert.Equal(t, 8, charges[1].ChargeBillingMonth)
	assert.Equal(t, 9, charges[2].ChargeBillingMonth)
	for _, ch := range charges {
		assert.Equal(t, "10000.00", ch.ChargeAmount.StringFixed(2))
		assert.Equal(t, 2025, ch.ChargeBillingYear)
	}
}

func TestGenerate_ThroughSessionEnd(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)
	enr := testEnrollment(schoolID, sess, date(2025, time.July, 1))

	charges, err := Generate(GenerateInput{
		Enrollment: enr,
		Rule:       rule,
		Session:    sess,
		Mode:       ModeThroughSessionEnd,
	})
	require.NoError(t, err)
	require.Len(t, charges, 12) // Juli 2025 s.d. Juni 2026

	// tahun nominal konstan meskipun kalender menyeberang ke 2026
	for _, ch := range charges {
		assert.Equal(t, 2025, ch.ChargeBillingYear)
	}
	assert.Equal(t, 7, charges[0].ChargeBillingMonth)
	assert.Equal(t, 6, charges[11].ChargeBillingMonth)
}

func TestGenerate_StartsAtSessionStartForEarlyEnrollment(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	// daftar sebelum session mulai → kursor mulai dari bulan awal session
	enr := testEnrollment(schoolID, sess, date(2025, time.May, 15))

	charges, err := Generate(GenerateInput{
		Enrollment: enr,
		Rule:       rule,
		Session:    sess,
		Mode:       ModeCurrentMonthOnly,
		Current:    Period{Year: 2025, Month: 7},
	})
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, 7, charges[0].ChargeBillingMonth)
	assert.Equal(t, "10000.00", charges[0].ChargeAmount.StringFixed(2))
}

func TestNominalBillingYear_Precedence(t *testing.T) {
	sess := academicsModel.AcademicSessionModel{
		AcademicSessionLabel:     "TA 2025/2026",
		AcademicSessionStartDate: date(2024, time.July, 1),
	}

	year := 2027
	cls := &academicsModel.SchoolClassModel{ClassAcademicYear: &year}

	// kelas punya tahun eksplisit → menang
	assert.Equal(t, 2027, NominalBillingYear(cls, sess))
	// tanpa kelas → token 4 digit pertama di label
	assert.Equal(t, 2025, NominalBillingYear(nil, sess))
	// label tanpa token → tahun tanggal mulai session
	sess.AcademicSessionLabel = "Semester Ganjil"
	assert.Equal(t, 2024, NominalBillingYear(nil, sess))
}
