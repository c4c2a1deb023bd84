package serverutils

import (
	"strings"

	"propdesk-be/internal/constant"

	"github.com/gofiber/fiber/v2"
)

// OrganizationMiddleware puts the caller's organization id in Locals.
// Callers are authenticated upstream; the header is trusted as-is.
func OrganizationMiddleware(defaultOrganizationId string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		orgId := strings.TrimSpace(ctx.Get(constant.OrganizationHeader))
		if orgId == "" {
			orgId = defaultOrganizationId
		}
		ctx.Locals(constant.OrganizationLocal, orgId)
		return ctx.Next()
	}
}

func OrganizationId(ctx *fiber.Ctx) string {
	orgId, _ := ctx.Locals(constant.OrganizationLocal).(string)
	return orgId
}
