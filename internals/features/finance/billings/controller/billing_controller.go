// file: internals/features/finance/billings/controller/billing_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	dto "sekolahku_backend/internals/features/finance/billings/dto"
	billingModel "sekolahku_backend/internals/features/finance/billings/model"
	"sekolahku_backend/internals/features/finance/billings/service"
	pricingService "sekolahku_backend/internals/features/finance/pricing/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =======================================================
   BOOTSTRAP
======================================================= */

type BillingHandler struct {
	DB       *gorm.DB
	Runner   *service.BatchRunner
	Resolver *pricingService.PriceResolver
	Validate *validator.Validate
}

func NewBillingHandler(db *gorm.DB, workers int) *BillingHandler {
	return &BillingHandler{
		DB:       db,
		Runner:   service.NewBatchRunner(db, workers),
		Resolver: pricingService.NewPriceResolver(db),
		Validate: validator.New(),
	}
}

/* =======================================================
   RUN CYCLE (batch bulanan)
   POST /:school_id/billing/run-cycle
======================================================= */

func (h *BillingHandler) RunCycle(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.RunCycleDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.Runner.RunCycle(c.UserContext(), schoolID, in.TargetYear, in.TargetMonth)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// batch selalu lapor generated/skipped/failed — tidak pernah abort di tengah
	return helper.JsonOK(c, "billing cycle finished", result)
}

/* =======================================================
   GENERATE PER ENROLLMENT (manual / saat pendaftaran)
   POST /:school_id/billing/enrollments/:id/generate
======================================================= */

func (h *BillingHandler) GenerateForEnrollment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	enrollmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid enrollment id")
	}

	var in dto.GenerateScheduleDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
		}
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	mode := service.ModeCurrentMonthOnly
	if in.Mode == string(service.ModeThroughSessionEnd) {
		mode = service.ModeThroughSessionEnd
	}

	var enr academicsModel.EnrollmentModel
	if err := h.DB.
		Where("enrollment_id = ? AND enrollment_school_id = ?", enrollmentID, schoolID).
		First(&enr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if enr.EnrollmentStatus != academicsModel.EnrollmentStatusActive {
		return helper.JsonError(c, fiber.StatusConflict, "enrollment is not active")
	}

	var session academicsModel.AcademicSessionModel
	if err := h.DB.
		Where("academic_session_id = ? AND academic_session_school_id = ?", enr.EnrollmentSessionID, schoolID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "academic session not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var class *academicsModel.SchoolClassModel
	var cls academicsModel.SchoolClassModel
	if err := h.DB.
		Where("class_id = ? AND class_school_id = ?", enr.EnrollmentClassID, schoolID).
		First(&cls).Error; err == nil {
		class = &cls
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	billingYear := service.NominalBillingYear(class, session)
	var courseID *uuid.UUID
	if class != nil {
		courseID = class.ClassCourseID
	}
	classID := enr.EnrollmentClassID

	rule, err := h.Resolver.Resolve(c.UserContext(), schoolID, billingYear, courseID, &classID)
	if err != nil {
		if errors.Is(err, pricingService.ErrPriceRuleNotFound) {
			// kondisi bisnis: pricing belum dikonfigurasi — hard stop, bukan default 0
			return helper.JsonError(c, fiber.StatusNotFound, "pricing not configured for this enrollment")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// periode yang sudah tertagih utk student ini → guard idempotensi
	var existingRows []billingModel.ChargeModel
	if err := h.DB.
		Select("charge_billing_year", "charge_billing_month").
		Where("charge_school_id = ? AND charge_student_id = ?", schoolID, enr.EnrollmentStudentID).
		Find(&existingRows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	existing := make(map[service.Period]bool, len(existingRows))
	for _, row := range existingRows {
		existing[service.Period{Year: row.ChargeBillingYear, Month: row.ChargeBillingMonth}] = true
	}

	now := time.Now()
	charges, err := service.Generate(service.GenerateInput{
		Enrollment:      enr,
		Rule:            rule,
		Class:           class,
		Session:         session,
		ExistingPeriods: existing,
		Mode:            mode,
		Current:         service.Period{Year: now.Year(), Month: int(now.Month())},
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	generated := 0
	skipped := 0
	created := make([]billingModel.ChargeModel, 0, len(charges))
	for _, ch := range charges {
		res := h.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "charge_school_id"},
				{Name: "charge_student_id"},
				{Name: "charge_billing_year"},
				{Name: "charge_billing_month"},
			},
			DoNothing: true,
		}).Create(&ch)
		if res.Error != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
		}
		if res.RowsAffected > 0 {
			generated++
			created = append(created, ch)
		} else {
			skipped++
		}
	}

	return helper.JsonCreated(c, "billing schedule generated", dto.GenerateScheduleResponse{
		Generated: generated,
		Skipped:   skipped,
		Charges:   dto.ToChargeResponses(created),
	})
}

/* =======================================================
   LIST CHARGES
   GET /:school_id/billing/charges
======================================================= */

func (h *BillingHandler) ListCharges(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&billingModel.ChargeModel{}).
		Where("charge_school_id = ?", schoolID)

	if raw := strings.TrimSpace(c.Query("student_id")); raw != "" {
		sid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		q = q.Where("charge_student_id = ?", sid)
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid year")
		}
		q = q.Where("charge_billing_year = ?", year)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("charge_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []billingModel.ChargeModel
	if err := q.
		Order("charge_billing_year DESC, charge_billing_month DESC, charge_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "charges", dto.ToChargeResponses(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
