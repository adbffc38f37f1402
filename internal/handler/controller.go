package handler

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"seo-ai/internal/service"
	"seo-ai/pkg/logger"
)

// Controller binds the HTTP routes to the services.
type Controller struct {
	analyzer   service.AnalyzerService
	generator  service.GeneratorService
	competitor service.CompetitorService
	predictor  service.PredictorService
	schedule   service.ScheduleService
	monitor    service.MonitorService
	log        *logger.Logger
}

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Analyzer   service.AnalyzerService
	Generator  service.GeneratorService
	Competitor service.CompetitorService
	Predictor  service.PredictorService
	Schedule   service.ScheduleService
	Monitor    service.MonitorService
}

// NewController builds a Controller from s.
func NewController(s Services) *Controller {
	return &Controller{
		analyzer:   s.Analyzer,
		generator:  s.Generator,
		competitor: s.Competitor,
		predictor:  s.Predictor,
		schedule:   s.Schedule,
		monitor:    s.Monitor,
		log:        logger.GetLogger().WithField("component", "handler"),
	}
}

// Register mounts every route on app.
func (ctl *Controller) Register(app *fiber.App) {
	app.Get("/", ctl.root)

	api := app.Group("/api")
	api.Post("/analyze", ctl.analyze)
	api.Post("/analyze/score", ctl.analyzeScore)
	api.Post("/score", ctl.score)
	api.Post("/score/predict", ctl.predict)
	api.Post("/generate", ctl.generate)

	comp := app.Group("/competitor")
	comp.Post("/analyze", ctl.competitorAnalyze)
	comp.Post("/compare", ctl.competitorCompare)
	comp.Post("/insights", ctl.competitorInsights)

	app.Post("/schedule/suggest", ctl.scheduleSuggest)

	mon := app.Group("/monitor")
	mon.Post("/run-now", ctl.monitorRunNow)
	mon.Get("/config", ctl.monitorGetConfig)
	mon.Post("/config", ctl.monitorSetConfig)
	mon.Get("/last", ctl.monitorLast)
}

func (ctl *Controller) root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "message": "SEO AI backend ready"})
}

// decodeBody unmarshals the request body into v. An empty body leaves v
// untouched so handlers apply their own required-field checks.
func decodeBody(c *fiber.Ctx, v interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, v); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid JSON body: "+err.Error())
	}
	return nil
}

// isEmptyJSON reports whether raw is missing, null or an empty object/array.
func isEmptyJSON(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "{}", "[]":
		return true
	}
	return false
}

// ErrorHandler renders every error as {"detail": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}
