package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nineball/backend/internal/config"
	"github.com/nineball/backend/internal/game"
	"github.com/nineball/backend/internal/ws"
)

type createSessionRequest struct {
	PlayerName string `json:"player_name"`
}

// CreateSession starts a new simulation session and returns a signed
// session token for the WebSocket surface.
func CreateSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createSessionRequest
		// Body is optional; anonymous sessions are allowed.
		_ = c.ShouldBindJSON(&req)

		if len(req.PlayerName) > 64 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_name too long"})
			return
		}

		session := game.Manager.CreateSession(req.PlayerName)

		token, err := signSessionToken(session.ID, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session token"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id": session.ID,
			"token":      token,
			"ws_url":     fmt.Sprintf("/api/v1/session/%s/ws?token=%s", session.ID, token),
		})
	}
}

// GetSessionFrame returns the latest frame snapshot for polling clients.
func GetSessionFrame(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := authorizeSession(c, cfg)
		if !ok {
			return
		}

		frame := session.LastFrame()
		if frame == nil {
			c.JSON(http.StatusOK, gin.H{"frame": nil})
			return
		}
		c.Data(http.StatusOK, "application/json", frame)
	}
}

// HandleSessionWebSocket upgrades to the frame/input stream.
func HandleSessionWebSocket(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := authorizeSession(c, cfg)
		if !ok {
			return
		}
		ws.Serve(c, session)
	}
}

// authorizeSession resolves the :id route parameter against the token
// query parameter. Responds with an error itself when authorization
// fails.
func authorizeSession(c *gin.Context, cfg *config.Config) (*game.Session, bool) {
	id := c.Param("id")
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return nil, false
	}

	tokenID, err := parseSessionToken(token, cfg)
	if err != nil || tokenID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid session token"})
		return nil, false
	}

	session, err := game.Manager.GetSession(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}

func signSessionToken(sessionID string, cfg *config.Config) (string, error) {
	exp := time.Now().Add(time.Duration(cfg.SessionTokenTTLHours) * time.Hour)
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"exp":        exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func parseSessionToken(tokenString string, cfg *config.Config) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("missing session_id claim")
	}
	return sessionID, nil
}
