// file: internals/helpers/auth/school_context.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Keys di c.Locals (diisi oleh middleware AuthJWT)
const (
	LocUserID         = "user_id"          // string UUID
	LocRolesGlobal    = "roles_global"     // []string
	LocSchoolRoles    = "school_roles"     // []SchoolRolesEntry | []map[string]any
	LocActiveSchoolID = "active_school_id" // string UUID
	LocIsOwner        = "is_owner"         // bool
)

type SchoolRolesEntry struct {
	SchoolID uuid.UUID `json:"school_id"`
	Roles    []string  `json:"roles"`
}

type RolesClaim struct {
	RolesGlobal []string           `json:"roles_global"`
	SchoolRoles []SchoolRolesEntry `json:"school_roles"`
}

// roles staf yang boleh mengelola billing & kas
var staffRoles = map[string]bool{
	"admin":     true,
	"bendahara": true,
	"dkm":       true,
	"teacher":   true,
}

func localsUUID(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" tidak ditemukan di token")
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" kosong di token")
	}
	return uuid.Parse(strings.TrimSpace(s))
}

// GetUserIDFromToken mengambil user_id (UUID) dari locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, LocUserID)
}

// ResolveSchoolIDFromContext: tenant id dari token (active_school_id),
// fallback terakhir dari path :school_id.
func ResolveSchoolIDFromContext(c *fiber.Ctx) (uuid.UUID, error) {
	if id, err := localsUUID(c, LocActiveSchoolID); err == nil && id != uuid.Nil {
		return id, nil
	}
	raw := strings.TrimSpace(c.Params("school_id"))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school context not found in token or path")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid school_id")
	}
	return id, nil
}

func isOwner(c *fiber.Ctx) bool {
	if v, ok := c.Locals(LocIsOwner).(bool); ok {
		return v
	}
	return false
}

func schoolRoles(c *fiber.Ctx) []SchoolRolesEntry {
	switch v := c.Locals(LocSchoolRoles).(type) {
	case []SchoolRolesEntry:
		return v
	case []any:
		out := make([]SchoolRolesEntry, 0, len(v))
		for _, it := range v {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			var e SchoolRolesEntry
			if s, ok := m["school_id"].(string); ok {
				if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
					e.SchoolID = id
				}
			}
			if arr, ok := m["roles"].([]any); ok {
				for _, r := range arr {
					if rs, ok := r.(string); ok {
						e.Roles = append(e.Roles, rs)
					}
				}
			}
			out = append(out, e)
		}
		return out
	}
	return nil
}

// EnsureStaffSchool: guard staf (admin/bendahara/dkm/teacher) pada tenant tsb.
// Owner global selalu lolos.
func EnsureStaffSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	if isOwner(c) {
		return nil
	}
	for _, e := range schoolRoles(c) {
		if e.SchoolID != schoolID {
			continue
		}
		for _, r := range e.Roles {
			if staffRoles[strings.ToLower(strings.TrimSpace(r))] {
				return nil
			}
		}
	}
	return fiber.NewError(fiber.StatusForbidden, "staff access required for this school")
}
