package vertex

import (
	"change-detector/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for vertex change detection.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the change detection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/changes")
	group.Get("/", h.HandleGetChanges)
	group.Get("/lines", h.HandleGetPipeline(PipelineLines))
	group.Get("/points", h.HandleGetPipeline(PipelinePoints))
	group.Post("/run", h.HandleRun)
}

// HandleGetChanges compares both pipelines without side effects.
// @Summary Get Changes
// @Description Compare the export against the database for segments and points. Use format=text for the plain report.
// @Tags changes
// @Produce json
// @Produce plain
// @Param format query string false "Response format (json, text)"
// @Param fresh query bool false "Bypass cached snapshots"
// @Success 200 {object} RunResult "Change Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /changes [get]
func (h *Handler) HandleGetChanges(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Run(c.Context(), RunOptions{Fresh: c.QueryBool("fresh", false)})
	if err != nil {
		l.Error("Change detection failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if c.Query("format") == "text" {
		return c.SendString(result.Report)
	}
	return c.JSON(result)
}

// HandleGetPipeline returns the handler comparing a single pipeline.
// @Summary Get Pipeline Changes
// @Description Compare one pipeline (lines or points).
// @Tags changes
// @Produce json
// @Param fresh query bool false "Bypass cached snapshots"
// @Success 200 {object} reconcile.Report "Pipeline Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /changes/lines [get]
// @Router /changes/points [get]
func (h *Handler) HandleGetPipeline(pipeline string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c)

		report, err := h.service.Compare(c.Context(), pipeline, c.QueryBool("fresh", false))
		if err != nil {
			l.Error("Pipeline comparison failed", zap.String("pipeline", pipeline), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if c.Query("format") == "text" {
			return c.SendString(report.String())
		}
		return c.JSON(report)
	}
}

// HandleRun performs a full change detection run.
// @Summary Run Change Detection
// @Description Run the ETL workspace, back up the database snapshots, compare and send the report.
// @Tags changes
// @Produce json
// @Param etl query bool false "Run the ETL workspace first (default true)"
// @Param backup query bool false "Back up the database snapshots (default from config)"
// @Param notify query bool false "Send the report (default true)"
// @Success 200 {object} RunResult "Run Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /changes/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := RunOptions{
		Extract: c.QueryBool("etl", true),
		Backup:  c.QueryBool("backup", h.service.cfg.Backup),
		Notify:  c.QueryBool("notify", true),
		Fresh:   true,
	}

	result, err := h.service.Run(c.Context(), opts)
	if err != nil {
		l.Error("Change detection run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Change detection run finished", zap.String("run_id", result.ID))
	return c.JSON(result)
}
