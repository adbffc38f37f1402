package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"seo-ai/pkg/analyzer"
	"seo-ai/pkg/generator"
	"seo-ai/pkg/scorer"
)

type scoreRequest struct {
	Features json.RawMessage `json:"features"`
}

type predictRequest struct {
	Meta scorer.PageSignals `json:"meta"`
	Page scorer.PageContent `json:"page"`
}

type generateRequest struct {
	Text        *string                   `json:"text"`
	Kinds       []string                  `json:"kinds"`
	MaxTokens   int                       `json:"max_tokens"`
	Temperature *float64                  `json:"temperature"`
	Features    *generator.PromptFeatures `json:"features"`
}

func (ctl *Controller) analyze(c *fiber.Ctx) error {
	var in analyzer.Input
	if err := decodeBody(c, &in); err != nil {
		return err
	}

	features, err := ctl.analyzer.Analyze(c.UserContext(), in)
	if err != nil {
		return analyzeError(err)
	}
	return c.JSON(features)
}

func (ctl *Controller) analyzeScore(c *fiber.Ctx) error {
	var in analyzer.Input
	if err := decodeBody(c, &in); err != nil {
		return err
	}

	page, err := ctl.analyzer.AnalyzeAndScore(c.UserContext(), in)
	if err != nil {
		return analyzeError(err)
	}
	return c.JSON(page)
}

func analyzeError(err error) error {
	var fe *analyzer.FetchError
	switch {
	case errors.Is(err, analyzer.ErrNoInput):
		return fiber.NewError(fiber.StatusBadRequest, "Provide url or html or text")
	case errors.As(err, &fe):
		return fiber.NewError(fiber.StatusBadRequest, "Failed to fetch URL: "+fe.Err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Analysis failed: "+err.Error())
	}
}

func (ctl *Controller) score(c *fiber.Ctx) error {
	var req scoreRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if isEmptyJSON(req.Features) {
		return fiber.NewError(fiber.StatusBadRequest, "Provide a 'features' object (analyzer output).")
	}

	var features analyzer.Features
	if err := json.Unmarshal(req.Features, &features); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Scoring error: "+err.Error())
	}
	return c.JSON(fiber.Map{"ok": true, "result": scorer.ComputeOverallScore(&features)})
}

func (ctl *Controller) predict(c *fiber.Ctx) error {
	var req predictRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	pred, err := ctl.predictor.PredictPage(req.Meta, req.Page)
	if errors.Is(err, scorer.ErrNoModel) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Model not loaded. Train the model first.")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Prediction failed: "+err.Error())
	}
	return c.JSON(pred)
}

func (ctl *Controller) generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if req.Text == nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Field 'text' is required")
	}

	generated := ctl.generator.Generate(c.UserContext(), generator.Request{
		Text:        *req.Text,
		Kinds:       req.Kinds,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Features:    req.Features,
	})
	return c.JSON(fiber.Map{"generated": generated})
}
