package controller

import (
	"propdesk-be/internal/pkg/serverutils"
	"propdesk-be/internal/service"
	"propdesk-be/pkg/content"

	"github.com/gofiber/fiber/v2"
)

type IRenderController interface {
	RegisterRoutes(r fiber.Router)
	Render(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	DownloadLink(ctx *fiber.Ctx) error
	Redeem(ctx *fiber.Ctx) error
}

type renderController struct {
	renderService service.IRenderService
}

func NewRenderController(renderService service.IRenderService) IRenderController {
	return &renderController{
		renderService: renderService,
	}
}

func (c *renderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/documents")
	h.Get("/:id/render", c.Render)
	h.Get("/:id/download", c.Download)
	h.Get("/:id/download-url", c.DownloadLink)

	r.Get("/v1/downloads/:token", c.Redeem)
}

func (c *renderController) Render(ctx *fiber.Ctx) error {
	res, err := c.renderService.Render(ctx.UserContext(), serverutils.OrganizationId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *renderController) Download(ctx *fiber.Ctx) error {
	d, err := c.renderService.Download(ctx.UserContext(), serverutils.OrganizationId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return sendDownload(ctx, d)
}

func (c *renderController) DownloadLink(ctx *fiber.Ctx) error {
	res, err := c.renderService.DownloadLink(ctx.UserContext(), serverutils.OrganizationId(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// Redeem is reachable without an organization header. The token carries it.
func (c *renderController) Redeem(ctx *fiber.Ctx) error {
	d, err := c.renderService.Redeem(ctx.UserContext(), ctx.Params("token"))
	if err != nil {
		return err
	}

	return sendDownload(ctx, d)
}

func sendDownload(ctx *fiber.Ctx, d *content.Download) error {
	ctx.Set(fiber.HeaderContentType, d.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, d.ContentDisposition())
	return ctx.Send(d.Body)
}
