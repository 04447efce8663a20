// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	billingModel "sekolahku_backend/internals/features/finance/billings/model"
	dto "sekolahku_backend/internals/features/finance/payments/dto"
	"sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type PaymentHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db, Validate: validator.New()}
}

/* =======================================================
   CHECKOUT (Snap token untuk satu charge)
   POST /:school_id/payments/:charge_id/checkout
======================================================= */

func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}

	chargeID, err := uuid.Parse(c.Params("charge_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid charge id")
	}

	var in dto.CheckoutDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var ch billingModel.ChargeModel
	if err := h.DB.
		Where("charge_id = ? AND charge_school_id = ?", chargeID, schoolID).
		First(&ch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "charge not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if ch.ChargeStatus != billingModel.ChargeStatusPending {
		return helper.JsonError(c, fiber.StatusConflict, "charge is not payable")
	}

	token, err := service.GenerateChargeSnapToken(ch, in.PayerName, in.PayerEmail)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "payment gateway error")
	}

	return helper.JsonOK(c, "snap token created", dto.CheckoutResponse{SnapToken: token})
}

/* =======================================================
   WEBHOOK MIDTRANS (tanpa auth — diverifikasi payload-nya)
   POST /payments/webhook/midtrans
======================================================= */

func (h *PaymentHandler) MidtransWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	if err := service.HandleChargeStatusWebhook(h.DB, body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "webhook processed", nil)
}

/* =======================================================
   PEMBAYARAN TUNAI DI LOKET
   POST /:school_id/payments/:charge_id/cash
======================================================= */

func (h *PaymentHandler) RecordCash(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	chargeID, err := uuid.Parse(c.Params("charge_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid charge id")
	}

	var in dto.CashPaymentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if !in.Amount.IsPositive() {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "amount must be positive")
	}

	entry, err := service.RecordCashPayment(h.DB, schoolID, chargeID, in.Amount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "charge not found")
		}
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}

	return helper.JsonCreated(c, "cash payment recorded", entry)
}
