// file: internals/features/finance/billings/service/batch_runner_test.go
package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	billingModel "sekolahku_backend/internals/features/finance/billings/model"
	pricingModel "sekolahku_backend/internals/features/finance/pricing/model"
	pricingService "sekolahku_backend/internals/features/finance/pricing/service"
)

func testCycleItem(schoolID uuid.UUID, sess academicsModel.AcademicSessionModel) CycleItem {
	return CycleItem{
		Enrollment: testEnrollment(schoolID, sess, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)),
		Session:    sess,
	}
}

// collectInsert: InsertChargeFunc yang menampung semua baris (thread-safe).
func collectInsert(mu *sync.Mutex, out *[]billingModel.ChargeModel) InsertChargeFunc {
	return func(_ context.Context, ch billingModel.ChargeModel) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		*out = append(*out, ch)
		return true, nil
	}
}

func TestRunItems_FailureIsolation(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	items := make([]CycleItem, 5)
	for i := range items {
		items[i] = testCycleItem(schoolID, sess)
	}
	// satu enrollment tanpa pricing rule
	brokenID := items[2].Enrollment.EnrollmentID

	resolve := func(_ context.Context, item CycleItem) (*pricingModel.PriceRuleModel, error) {
		if item.Enrollment.EnrollmentID == brokenID {
			return nil, pricingService.ErrPriceRuleNotFound
		}
		return rule, nil
	}

	var (
		mu       sync.Mutex
		inserted []billingModel.ChargeModel
	)
	runner := &BatchRunner{Workers: 4}
	res := runner.runItems(context.Background(), items, Period{Year: 2025, Month: 7}, resolve, collectInsert(&mu, &inserted))

	assert.Equal(t, 4, res.Generated)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, brokenID, res.Failed[0].EnrollmentID)
	assert.Equal(t, "pricing not configured", res.Failed[0].Reason)
	assert.Len(t, inserted, 4)
}

func TestRunItems_ConflictCountsAsSkipped(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	items := []CycleItem{testCycleItem(schoolID, sess)}

	resolve := func(_ context.Context, _ CycleItem) (*pricingModel.PriceRuleModel, error) {
		return rule, nil
	}
	// unique index kena → DO NOTHING, RowsAffected 0
	insert := func(_ context.Context, _ billingModel.ChargeModel) (bool, error) {
		return false, nil
	}

	runner := &BatchRunner{Workers: 2}
	res := runner.runItems(context.Background(), items, Period{Year: 2025, Month: 7}, resolve, insert)

	assert.Equal(t, 0, res.Generated)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Failed)
}

func TestRunItems_AlreadyBilledPeriodSkipped(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	item := testCycleItem(schoolID, sess)
	item.ExistingPeriods = map[Period]bool{{Year: 2025, Month: 7}: true}

	resolve := func(_ context.Context, _ CycleItem) (*pricingModel.PriceRuleModel, error) {
		return rule, nil
	}
	insert := func(_ context.Context, _ billingModel.ChargeModel) (bool, error) {
		t.Fatal("insert tidak boleh terpanggil untuk periode yang sudah ada")
		return false, nil
	}

	runner := &BatchRunner{Workers: 2}
	res := runner.runItems(context.Background(), []CycleItem{item}, Period{Year: 2025, Month: 7}, resolve, insert)

	assert.Equal(t, 0, res.Generated)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Failed)
}

func TestRunItems_DuplicateActiveEnrollmentsBothFail(t *testing.T) {
	schoolID := uuid.New()
	sess := testSession(schoolID)
	rule := testRule(schoolID, "10000", 10)

	a := testCycleItem(schoolID, sess)
	b := testCycleItem(schoolID, sess)
	// sama-sama aktif untuk (student, session) yang sama — data korup
	b.Enrollment.EnrollmentStudentID = a.Enrollment.EnrollmentStudentID
	ok := testCycleItem(schoolID, sess)

	resolve := func(_ context.Context, _ CycleItem) (*pricingModel.PriceRuleModel, error) {
		return rule, nil
	}
	insert := func(_ context.Context, _ billingModel.ChargeModel) (bool, error) {
		return true, nil
	}

	runner := &BatchRunner{Workers: 2}
	res := runner.runItems(context.Background(), []CycleItem{a, b, ok}, Period{Year: 2025, Month: 7}, resolve, insert)

	assert.Equal(t, 1, res.Generated)
	require.Len(t, res.Failed, 2)
	failedIDs := map[uuid.UUID]bool{
		res.Failed[0].EnrollmentID: true,
		res.Failed[1].EnrollmentID: true,
	}
	assert.True(t, failedIDs[a.Enrollment.EnrollmentID])
	assert.True(t, failedIDs[b.Enrollment.EnrollmentID])
	for _, f := range res.Failed {
		assert.Equal(t, "duplicate active enrollment for student in session", f.Reason)
	}
}
