// file: internals/features/finance/reconciliation/controller/cash_shift_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/reconciliation/dto"
	reconModel "sekolahku_backend/internals/features/finance/reconciliation/model"
	"sekolahku_backend/internals/features/finance/reconciliation/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =======================================================
   BOOTSTRAP
======================================================= */

type CashShiftHandler struct {
	DB       *gorm.DB
	Closer   *service.CashCloser
	Validate *validator.Validate
}

func NewCashShiftHandler(db *gorm.DB) *CashShiftHandler {
	return &CashShiftHandler{
		DB:       db,
		Closer:   service.NewCashCloser(db),
		Validate: validator.New(),
	}
}

/* =======================================================
   OPEN SHIFT
   POST /:school_id/cash-shifts
======================================================= */

func (h *CashShiftHandler) OpenShift(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var in dto.OpenShiftDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
		}
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	denoms := reconModel.DefaultDenominations
	if len(in.Denominations) > 0 {
		denoms = pq.Int64Array(in.Denominations)
	}

	shift := reconModel.CashShiftModel{
		CashShiftSchoolID:       schoolID,
		CashShiftOpenedByUserID: userID,
		CashShiftStatus:         reconModel.CashShiftStatusCounting,
		CashShiftOpenedAt:       time.Now(),
		CashShiftDenominations:  denoms,
	}
	if err := h.DB.Create(&shift).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "cash shift opened", dto.ToShiftResponse(shift))
}

/* =======================================================
   CLOSE SHIFT (blind cash close)
   POST /:school_id/cash-shifts/:id/close
======================================================= */

func (h *CashShiftHandler) CloseShift(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	shiftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid shift id")
	}

	var in dto.CloseShiftDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if in.DeclaredCardTerminal.IsNegative() || in.DeclaredBankTransfer.IsNegative() || in.DeclaredMobileWallet.IsNegative() {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "declared totals must not be negative")
	}

	// hanya denominasi yang di-freeze di shift yang boleh dihitung
	var shift reconModel.CashShiftModel
	if err := h.DB.
		Where("cash_shift_id = ? AND cash_shift_school_id = ?", shiftID, schoolID).
		First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "cash shift not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	allowed := make(map[int64]bool, len(shift.CashShiftDenominations))
	for _, v := range shift.CashShiftDenominations {
		allowed[v] = true
	}
	counts := make(map[int64]int64, len(in.DeclaredCashCounts))
	for _, row := range in.DeclaredCashCounts {
		if !allowed[row.DenominationValue] {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "unknown denomination for this shift")
		}
		counts[row.DenominationValue] += row.Quantity
	}

	declared := service.NewChannelTotals()
	declared[reconModel.ChannelCash] = service.CashTotal(counts)
	declared[reconModel.ChannelCardTerminal] = in.DeclaredCardTerminal
	declared[reconModel.ChannelBankTransfer] = in.DeclaredBankTransfer
	declared[reconModel.ChannelMobileWallet] = in.DeclaredMobileWallet

	report, err := h.Closer.Close(c.UserContext(), schoolID, shiftID, declared, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShiftAlreadyClosed):
			return helper.JsonError(c, fiber.StatusConflict, "cash shift already closed")
		case errors.Is(err, service.ErrLedgerFetchFailed):
			// transisi batal; operator tetap di COUNTING
			return helper.JsonError(c, fiber.StatusBadGateway, "ledger totals unavailable, shift left open")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "cash shift not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "cash shift closed", dto.ToReportResponse(*report))
}

/* =======================================================
   GET REPORT
   GET /:school_id/cash-shifts/:id/report
======================================================= */

func (h *CashShiftHandler) GetShiftReport(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	shiftID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid shift id")
	}

	var report reconModel.ReconciliationReportModel
	if err := h.DB.
		Where("reconciliation_report_shift_id = ? AND reconciliation_report_school_id = ?", shiftID, schoolID).
		First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "report not found (shift not closed yet?)")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "reconciliation report", dto.ToReportResponse(report))
}
