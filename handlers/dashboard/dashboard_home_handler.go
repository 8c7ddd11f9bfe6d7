package handlers

import (
	"net/http"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type HomeHandler struct {
	stats services.IStatsService
}

func NewHomeHandler(stats services.IStatsService) *HomeHandler {
	return &HomeHandler{stats: stats}
}

func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{"Title": "Admin Dashboard"}
	renderer.SetFlashMessages(data, flashData)

	stats, err := h.stats.AdminStats(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - HomePage stats failed", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Gagal memuat statistik."
		stats = &services.AdminStats{}
	}
	data["Stats"] = stats
	return renderer.Render(c, "dashboard/home", dashboardLayout, data, http.StatusOK)
}
