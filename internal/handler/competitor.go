package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"seo-ai/pkg/competitor"
)

type competitorAnalyzeRequest struct {
	URLs      []string `json:"urls"`
	FetchText bool     `json:"fetch_text"`
}

type compareRequest struct {
	Target      *competitor.PageFeatures `json:"target"`
	Competitors []competitor.PageFeatures `json:"competitors"`
}

type insightsRequest struct {
	Comparison *competitor.Comparison `json:"comparison"`
}

func (ctl *Controller) competitorAnalyze(c *fiber.Ctx) error {
	var req competitorAnalyzeRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	if req.URLs == nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Field 'urls' is required")
	}

	results := ctl.competitor.Analyze(c.UserContext(), req.URLs, req.FetchText)
	return c.JSON(fiber.Map{"results": results})
}

func (ctl *Controller) competitorCompare(c *fiber.Ctx) error {
	var req compareRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	cmp, err := competitor.Compare(req.Target, req.Competitors)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Need both target and competitors data")
	}
	return c.JSON(cmp)
}

func (ctl *Controller) competitorInsights(c *fiber.Ctx) error {
	var req insightsRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	text, err := ctl.competitor.Insights(c.UserContext(), req.Comparison)
	if errors.Is(err, competitor.ErrMissingData) {
		return fiber.NewError(fiber.StatusBadRequest, "Missing comparison data")
	}
	if err != nil {
		ctl.log.WithError(err).Error("Competitor insight generation failed")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"ai_insights": text})
}
