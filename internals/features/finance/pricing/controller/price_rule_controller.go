// file: internals/features/finance/pricing/controller/price_rule_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/pricing/dto"
	pricingModel "sekolahku_backend/internals/features/finance/pricing/model"
	"sekolahku_backend/internals/features/finance/pricing/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =======================================================
   BOOTSTRAP & HELPERS
======================================================= */

type PriceRuleHandler struct {
	DB       *gorm.DB
	Resolver *service.PriceResolver
	Validate *validator.Validate
}

func NewPriceRuleHandler(db *gorm.DB) *PriceRuleHandler {
	return &PriceRuleHandler{
		DB:       db,
		Resolver: service.NewPriceResolver(db),
		Validate: validator.New(),
	}
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

func queryUUIDPtr(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

/* =======================================================
   PRICE RULES (AUTHORIZED + TENANT-SCOPED)
======================================================= */

// POST /:school_id/billing/price-rules
func (h *PriceRuleHandler) CreatePriceRule(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.PriceRuleCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	// selalu set dari context (abaikan body)
	in.PriceRuleSchoolID = schoolID

	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if in.PriceRuleMonthlyFee.IsNegative() || in.PriceRuleEnrollmentFee.IsNegative() {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "fees must not be negative")
	}

	m := dto.PriceRuleCreateDTOToModel(in)
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "a price rule already exists for this (year, course, class) target")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "price rule created", dto.ToPriceRuleResponse(m))
}

// DELETE /:school_id/billing/price-rules/:id
// Rule yang sudah dipakai charge bersifat historis → tolak hapus.
func (h *PriceRuleHandler) DeletePriceRule(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var m pricingModel.PriceRuleModel
	if err := h.DB.
		Where("price_rule_id = ? AND price_rule_school_id = ?", id, schoolID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "price rule not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var refs int64
	if err := h.DB.Table("charges").
		Where("charge_price_rule_id = ? AND charge_deleted_at IS NULL", id).
		Count(&refs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if refs > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "price rule is referenced by generated charges and cannot be deleted")
	}

	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "price rule deleted", dto.ToPriceRuleResponse(m))
}

// GET /:school_id/billing/price-rules?year=
func (h *PriceRuleHandler) ListPriceRules(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&pricingModel.PriceRuleModel{}).
		Where("price_rule_school_id = ?", schoolID)
	if yearStr := strings.TrimSpace(c.Query("year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid year")
		}
		q = q.Where("price_rule_academic_year = ?", year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rules []pricingModel.PriceRuleModel
	if err := q.Order("price_rule_academic_year DESC, price_rule_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rules).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "price rules", dto.ToPriceRuleResponses(rules),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /:school_id/billing/price-rules/resolve?year=&course_id=&class_id=
// Cascade first-hit: (course,class) → (course,NULL) → (NULL,class) → (NULL,NULL).
func (h *PriceRuleHandler) ResolvePrice(c *fiber.Ctx) error {
	schoolID, err := helperAuth.ResolveSchoolIDFromContext(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil || year < 2000 || year > 2100 {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid year")
	}
	courseID, err := queryUUIDPtr(c, "course_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid course_id")
	}
	classID, err := queryUUIDPtr(c, "class_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid class_id")
	}

	rule, err := h.Resolver.Resolve(c.UserContext(), schoolID, year, courseID, classID)
	if err != nil {
		if errors.Is(err, service.ErrPriceRuleNotFound) {
			// kondisi bisnis, bukan fault: pricing belum dikonfigurasi
			return helper.JsonError(c, fiber.StatusNotFound, "pricing not configured for this target")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "price resolved", dto.ToPriceRuleResponse(*rule))
}
