package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"seo-ai/pkg/schedule"
)

type watchConfigRequest struct {
	URLs []string `json:"urls"`
}

func (ctl *Controller) scheduleSuggest(c *fiber.Ctx) error {
	var req schedule.Request
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	suggestion, err := ctl.schedule.Suggest(req)
	if errors.Is(err, schedule.ErrMissingTopic) {
		return fiber.NewError(fiber.StatusBadRequest, "Field 'topic' is required")
	}
	if err != nil {
		return err
	}
	return c.JSON(suggestion)
}

func (ctl *Controller) monitorRunNow(c *fiber.Ctx) error {
	run := ctl.monitor.RunOnce(c.UserContext())
	return c.JSON(run.Results)
}

func (ctl *Controller) monitorGetConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"urls": ctl.monitor.WatchURLs()})
}

func (ctl *Controller) monitorSetConfig(c *fiber.Ctx) error {
	var req watchConfigRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	saved, err := ctl.monitor.SetWatchURLs(req.URLs)
	if err != nil {
		ctl.log.WithError(err).Error("Failed to save watch list")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save watch list: "+err.Error())
	}
	return c.JSON(fiber.Map{"saved_urls": saved, "count": len(saved)})
}

func (ctl *Controller) monitorLast(c *fiber.Ctx) error {
	run, ok := ctl.monitor.Last()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "No monitoring run yet")
	}
	return c.JSON(run)
}
