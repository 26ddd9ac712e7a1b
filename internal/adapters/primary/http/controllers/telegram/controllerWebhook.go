package telegram

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/admin/tg-bots/study-bot/internal/domain"
	"github.com/admin/tg-bots/study-bot/internal/ports/service"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	RelayService  service.IRelayService
	WebhookSecret string
	Log           *slog.Logger
}

func New(relayService service.IRelayService, webhookSecret string, log *slog.Logger) *Controller {
	return &Controller{
		RelayService:  relayService,
		WebhookSecret: webhookSecret,
		Log:           log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhook", c.handleWebhook)
}

func (c *Controller) handleWebhook(ctx *gin.Context) {
	// Секретный токен проверяем только если он настроен
	if c.WebhookSecret != "" {
		secretToken := ctx.GetHeader("X-Telegram-Bot-Api-Secret-Token")
		if secretToken != c.WebhookSecret {
			c.Log.Warn("webhook secret token mismatch")
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
			return
		}
	}

	var update domain.Update

	if err := ctx.ShouldBindJSON(&update); err != nil {
		c.Log.Warn("failed to bind webhook request", "error", err)
		ctx.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}

	reply, err := c.RelayService.Handle(ctx.Request.Context(), &update)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedUpdate) {
			c.Log.Debug("webhook update without message", "update_id", update.UpdateID)
		} else {
			c.Log.Error("failed to handle update",
				"error", err,
				"update_id", update.UpdateID,
			)
		}
		// Telegram ожидает 200 OK, иначе будет повторная доставка
		ctx.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "response": reply})
}
