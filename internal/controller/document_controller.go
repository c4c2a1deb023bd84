package controller

import (
	"propdesk-be/internal/dto"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/pkg/serverutils"
	"propdesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	searchService   service.ISearchService
}

func NewDocumentController(documentService service.IDocumentService, searchService service.ISearchService) IDocumentController {
	return &documentController{
		documentService: documentService,
		searchService:   searchService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/documents")
	h.Get("", c.List)
	h.Get("/search", c.Search)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	var req dto.ListDocumentsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("invalid query parameters")
	}

	res, err := c.documentService.List(ctx.UserContext(), serverutils.OrganizationId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *documentController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchDocumentsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("invalid query parameters")
	}

	res, err := c.searchService.Search(ctx.UserContext(), serverutils.OrganizationId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	res, err := c.documentService.Show(ctx.UserContext(), serverutils.OrganizationId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Create(ctx.UserContext(), serverutils.OrganizationId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *documentController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateDocumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = ctx.Params("id")

	res, err := c.documentService.Update(ctx.UserContext(), serverutils.OrganizationId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	res, err := c.documentService.Delete(ctx.UserContext(), serverutils.OrganizationId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// parseBody treats an empty body as an empty object.
func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Validation("invalid request body")
	}
	return nil
}
