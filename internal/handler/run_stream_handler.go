package handler

import (
	"os"

	"customs-evidence-be/internal/pkg/logger"
	internalWS "customs-evidence-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// RunStreamHandler upgrades clients onto the ingestion-run event stream.
type RunStreamHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewRunStreamHandler(hub *internalWS.Hub, log logger.ILogger) *RunStreamHandler {
	return &RunStreamHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer. Browsers cannot set
// headers on websocket handshakes, so the token may ride in a query param.
func (h *RunStreamHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("RunStreamHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	tenantId, ok := claims["tenant_id"].(string)
	if !ok || tenantId == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing tenant_id"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("RunStreamHandler", "Starting WebSocket session", map[string]interface{}{"tenant_id": tenantId})
			internalWS.ServeWs(h.hub, conn, tenantId)
			h.logger.Info("RunStreamHandler", "WebSocket session ended", map[string]interface{}{"tenant_id": tenantId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *RunStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/ingestion", h.ServeWs)
}
