package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sitemint/sitemint-backend/internal/application"
	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
)

type Server struct {
	handlers *application.Handlers
}

func NewServer(handlers *application.Handlers) *Server {
	return &Server{handlers: handlers}
}

func RegisterHandlers(app *fiber.App, s *Server) {
	api := app.Group("/api")
	api.Post("/scrape", s.ScrapeSite)
	api.Get("/sites", s.ListSites)
	api.Get("/sites/:id", s.GetSite)
	api.Patch("/sites/:id", s.UpdateSite)
	api.Delete("/sites/:id", s.DeleteSite)
	api.Post("/sites/:id/deploy", s.DeploySite)
}

// ScrapeSite runs the extraction pipeline and optionally saves the result.
func (s *Server) ScrapeSite(c *fiber.Ctx) error {
	var req dto.ScrapeSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "url is required"})
	}

	config, err := s.handlers.ScrapeSite.Execute(c.Context(), req.URL)
	if err != nil {
		return failure(c, err)
	}

	if !req.Save {
		return c.Status(fiber.StatusOK).JSON(dto.ResultResponse{Success: true, Data: config})
	}

	site, err := s.handlers.SaveConfig.Execute(c.Context(), config)
	if err != nil {
		return failure(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ResultResponse{Success: true, Data: site})
}

func (s *Server) ListSites(c *fiber.Ctx) error {
	sites, err := s.handlers.ListSites.Query(c.Context())
	if err != nil {
		return failure(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.ResultResponse{Success: true, Data: sites})
}

func (s *Server) GetSite(c *fiber.Ctx) error {
	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid site id"})
	}

	site, err := s.handlers.GetSite.ByID(c.Context(), siteID)
	if err != nil {
		return failure(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.ResultResponse{Success: true, Data: site})
}

func (s *Server) UpdateSite(c *fiber.Ctx) error {
	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid site id"})
	}

	var req dto.UpdateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	site, err := s.handlers.UpdateSite.Execute(c.Context(), siteID, &req)
	if err != nil {
		return failure(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.ResultResponse{
		Success: true,
		Message: "Site details updated successfully!",
		Data:    site,
	})
}

func (s *Server) DeleteSite(c *fiber.Ctx) error {
	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid site id"})
	}

	if err := s.handlers.DeleteSite.Execute(c.Context(), siteID); err != nil {
		return failure(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.ResultResponse{Success: true, Message: "Site deleted successfully."})
}

func (s *Server) DeploySite(c *fiber.Ctx) error {
	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid site id"})
	}

	result, err := s.handlers.DeploySite.Execute(c.Context(), siteID)
	if err != nil {
		// Fatal misconfiguration is intentionally not converted into a
		// uniform result.
		var confErr errs.ConfigurationError
		if errors.As(err, &confErr) {
			return err
		}
		return failure(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.ResultResponse{
		Success: true,
		Message: "GitHub operations completed successfully!",
		Data:    result,
	})
}

// failure converts a typed application error into the uniform
// {success, message} body with a matching status code.
func failure(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(dto.ErrorResponse{Message: err.Error()})
}

func statusFor(err error) int {
	var notFound errs.NotFound
	var duplicate errs.DuplicateSubdomain
	var fetchErr errs.FetchError
	var refused errs.ExtractionRefused
	var validation errs.ValidationError
	var deployment errs.DeploymentError

	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &duplicate):
		return fiber.StatusConflict
	case errors.As(err, &fetchErr):
		return fiber.StatusBadGateway
	case errors.As(err, &refused), errors.As(err, &validation):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &deployment):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
