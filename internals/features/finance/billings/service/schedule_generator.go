// file: internals/features/finance/billings/service/schedule_generator.go
package service

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	billingModel "sekolahku_backend/internals/features/finance/billings/model"
	pricingModel "sekolahku_backend/internals/features/finance/pricing/model"
)

// ErrMissingPricingRule: generator dipanggil tanpa rule. Caller seharusnya
// sudah resolve duluan; ini guard defensif, bukan jalur normal.
var ErrMissingPricingRule = errors.New("missing pricing rule")

type GenerateMode string

const (
	// ModeCurrentMonthOnly: batas akhir = bulan siklus berjalan (tidak pre-bill
	// bulan depan). Dipakai batch runner bulanan.
	ModeCurrentMonthOnly GenerateMode = "current_month_only"
	// ModeThroughSessionEnd: generate sampai bulan akhir session sekaligus.
	ModeThroughSessionEnd GenerateMode = "through_session_end"
)

// Period: (billing_year, billing_month) — kunci idempotensi charge.
type Period struct {
	Year  int
	Month int
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// GenerateInput: seluruh dependensi dilewatkan eksplisit (termasuk periode
// referensi siklus) supaya perilaku tanggal reproducible di test — tidak ada
// pembacaan clock global di sini.
type GenerateInput struct {
	Enrollment academicsModel.EnrollmentModel
	Rule       *pricingModel.PriceRuleModel
	Class      *academicsModel.SchoolClassModel // boleh nil; sumber academic year eksplisit
	Session    academicsModel.AcademicSessionModel

	// ExistingPeriods: periode (nominal year, month) yang sudah punya charge —
	// guard idempotensi. Re-run dengan periods terisi = no-op untuk periode itu.
	ExistingPeriods map[Period]bool

	Mode GenerateMode

	// Current: bulan siklus berjalan untuk ModeCurrentMonthOnly.
	// Zero value → dipakai bulan enrollment (perilaku saat dipanggil dari
	// alur pendaftaran).
	Current Period
}

var yearTokenRe = regexp.MustCompile(`(19|20)\d{2}`)

// NominalBillingYear: tahun ajaran eksplisit di kelas → token 4 digit di label
// session → tahun tanggal mulai session.
func NominalBillingYear(class *academicsModel.SchoolClassModel, session academicsModel.AcademicSessionModel) int {
	if class != nil && class.ClassAcademicYear != nil && *class.ClassAcademicYear > 0 {
		return *class.ClassAcademicYear
	}
	if tok := yearTokenRe.FindString(session.AcademicSessionLabel); tok != "" {
		if y, err := strconv.Atoi(tok); err == nil {
			return y
		}
	}
	return session.AcademicSessionStartDate.Year()
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampDueDate: due_day 31 di Februari → 28/29, bukan 31 atau meluber ke Maret.
func clampDueDate(year int, month time.Month, dueDay int) time.Time {
	last := daysInMonth(year, month)
	if dueDay > last {
		dueDay = last
	}
	if dueDay < 1 {
		dueDay = 1
	}
	return time.Date(year, month, dueDay, 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// prorate: tarif bulanan × sisa hari / jumlah hari, dibulatkan half-up 2dp,
// floor di 0. Pembulatan dilakukan SEKALI, di sini.
func prorate(monthlyFee decimal.Decimal, enrollDay, totalDays int) decimal.Decimal {
	remaining := totalDays - enrollDay + 1
	if remaining < 0 {
		remaining = 0
	}
	amt := monthlyFee.
		Mul(decimal.NewFromInt(int64(remaining))).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(2) // shopspring Round = half away from zero ≡ half-up untuk nominal positif
	if amt.IsNegative() {
		return decimal.Zero
	}
	return amt
}

// Generate menghasilkan charge bulanan untuk satu enrollment — murni, tanpa
// I/O; baris yang dikembalikan BELUM di-insert (persistensi urusan caller,
// supaya bisa dry-run).
//
// Kursor mulai: max(tanggal mulai session, tanggal enrollment), dipotong ke
// awal bulan. Batas akhir: bulan akhir session (through_session_end) atau
// bulan siklus berjalan (current_month_only), inklusif.
func Generate(in GenerateInput) ([]billingModel.ChargeModel, error) {
	if in.Rule == nil {
		return nil, ErrMissingPricingRule
	}

	enr := in.Enrollment
	billingYear := NominalBillingYear(in.Class, in.Session)

	start := monthStart(in.Session.AcademicSessionStartDate)
	if enrStart := monthStart(enr.EnrollmentDate); enrStart.After(start) {
		start = enrStart
	}

	var end time.Time
	switch in.Mode {
	case ModeThroughSessionEnd:
		end = monthStart(in.Session.AcademicSessionEndDate)
	default: // ModeCurrentMonthOnly
		cur := in.Current
		if cur.Year == 0 {
			cur = PeriodOf(enr.EnrollmentDate)
		}
		end = time.Date(cur.Year, time.Month(cur.Month), 1, 0, 0, 0, 0, time.UTC)
		// jangan melewati akhir session
		if sessEnd := monthStart(in.Session.AcademicSessionEndDate); end.After(sessEnd) {
			end = sessEnd
		}
	}

	firstPeriod := true
	var out []billingModel.ChargeModel

	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		period := Period{Year: billingYear, Month: int(cursor.Month())}

		// guard idempotensi: periode yang sudah ada charge-nya dilewati utuh
		if in.ExistingPeriods[period] {
			firstPeriod = false
			continue
		}

		total := daysInMonth(cursor.Year(), cursor.Month())
		amount := in.Rule.PriceRuleMonthlyFee

		// prorata hanya untuk periode pertama yang digenerate, kalau tanggal
		// masuk jatuh SETELAH due_day di bulan yang sama
		if firstPeriod &&
			enr.EnrollmentDate.Year() == cursor.Year() &&
			enr.EnrollmentDate.Month() == cursor.Month() &&
			enr.EnrollmentDate.Day() > in.Rule.PriceRuleDueDay {
			amount = prorate(in.Rule.PriceRuleMonthlyFee, enr.EnrollmentDate.Day(), total)
		}
		firstPeriod = false

		ruleID := in.Rule.PriceRuleID
		enrID := enr.EnrollmentID
		out = append(out, billingModel.ChargeModel{
			ChargeSchoolID:     enr.EnrollmentSchoolID,
			ChargeStudentID:    enr.EnrollmentStudentID,
			ChargeClassID:      enr.EnrollmentClassID,
			ChargeEnrollmentID: &enrID,
			ChargePriceRuleID:  &ruleID,
			ChargeBillingYear:  period.Year,
			ChargeBillingMonth: period.Month,
			ChargeAmount:       amount,
			ChargeDueDate:      clampDueDate(cursor.Year(), cursor.Month(), in.Rule.PriceRuleDueDay),
			ChargeStatus:       billingModel.ChargeStatusPending,
		})
	}

	return out, nil
}
