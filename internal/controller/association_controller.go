package controller

import (
	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/serverutils"
	"propdesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// associationSegments maps route segments to target kinds.
var associationSegments = map[string]entity.TargetKind{
	"properties": entity.TargetKindProperty,
	"people":     entity.TargetKindPerson,
	"tags":       entity.TargetKindTag,
}

type IAssociationController interface {
	RegisterRoutes(r fiber.Router)
	Associate(kind entity.TargetKind) fiber.Handler
	Disassociate(kind entity.TargetKind) fiber.Handler
}

type associationController struct {
	associationService service.IAssociationService
}

func NewAssociationController(associationService service.IAssociationService) IAssociationController {
	return &associationController{
		associationService: associationService,
	}
}

func (c *associationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/documents")
	for segment, kind := range associationSegments {
		h.Post("/:id/"+segment, c.Associate(kind))
		h.Delete("/:id/"+segment+"/:targetId", c.Disassociate(kind))
	}
}

func (c *associationController) Associate(kind entity.TargetKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var req dto.AssociateRequest
		if err := parseBody(ctx, &req); err != nil {
			return err
		}

		res, created, err := c.associationService.Associate(ctx.UserContext(), serverutils.OrganizationId(ctx), kind, ctx.Params("id"), &req)
		if err != nil {
			return err
		}

		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return ctx.Status(status).JSON(res)
	}
}

func (c *associationController) Disassociate(kind entity.TargetKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		res, err := c.associationService.Disassociate(ctx.UserContext(), serverutils.OrganizationId(ctx), kind, ctx.Params("id"), ctx.Params("targetId"))
		if err != nil {
			return err
		}

		return ctx.JSON(res)
	}
}
