package httpapi

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"flack/auth"
	"flack/errors"
	"flack/observability"
	"flack/projection"
	"flack/services"
	"flack/ws"
)

// Deps carries everything the HTTP surface needs; the realtime hub itself
// is reached only through the websocket gateway.
type Deps struct {
	Log      *slog.Logger
	Auth     services.IAuthService
	Channels services.IChannelService
	Messages services.IMessageService
	Search   services.ISearchService
	Timeline *projection.Timeline
	Stats    *observability.HubStats
	Gateway  *ws.Gateway

	StaticDir   string
	SearchLimit int
}

// SetupRouter wires REST routes under /api and the websocket upgrade at /ws.
func SetupRouter(ctx context.Context, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if deps.StaticDir != "" {
		r.Static("/static", deps.StaticDir)
		r.GET("/", func(c *gin.Context) {
			c.File(deps.StaticDir + "/index.html")
		})
	}

	api := r.Group("/api")

	api.POST("/register", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		token, err := deps.Auth.Register(req.Email, req.Password)
		if err != nil {
			status := statusFor(err)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		setSession(c, string(token))
		c.JSON(http.StatusCreated, gin.H{"userId": userIDFromToken(string(token))})
	})

	api.POST("/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		token, err := deps.Auth.Login(req.Email, req.Password)
		if err != nil {
			deps.Log.Debug("Login rejected", "email", req.Email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		setSession(c, string(token))
		c.JSON(http.StatusOK, gin.H{"userId": userIDFromToken(string(token))})
	})

	api.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Stats.Snapshot())
	})

	session := api.Group("", RequireSession())

	session.GET("/channels", func(c *gin.Context) {
		channels, err := deps.Channels.GetChannels(currentUser(c))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"channels": channels})
	})

	session.POST("/channels", func(c *gin.Context) {
		var req struct {
			Name    string   `json:"name"`
			Members []string `json:"members"`
		}
		if err := c.BindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
			return
		}

		members := append([]string{currentUser(c)}, req.Members...)
		channel, err := deps.Channels.CreateChannel(req.Name, members...)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, channel)
	})

	session.POST("/channels/direct", func(c *gin.Context) {
		var req struct {
			UserID string `json:"userId"`
		}
		if err := c.BindJSON(&req); err != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		channel, err := deps.Channels.CreateDirectChannel(currentUser(c), req.UserID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, channel)
	})

	session.POST("/channels/:id/members", func(c *gin.Context) {
		var req struct {
			UserID string `json:"userId"`
		}
		if err := c.BindJSON(&req); err != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		if err := deps.Channels.AddMember(c.Param("id"), req.UserID); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	session.GET("/channels/:id/messages", func(c *gin.Context) {
		var cursor *string
		if raw := c.Query("cursor"); raw != "" {
			cursor = &raw
		}

		views, next, err := deps.Messages.GetMessages(c.Param("id"), cursor)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		resp := gin.H{"messages": views}
		if next != nil {
			resp["nextCursor"] = *next
		}
		c.JSON(http.StatusOK, resp)
	})

	session.GET("/channels/:id/recent", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"messages": deps.Timeline.Recent(c.Param("id"))})
	})

	session.GET("/search", func(c *gin.Context) {
		terms := c.Query("q")
		if terms == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
			return
		}

		views, total, err := deps.Search.Search(c.Request.Context(), terms, c.Query("channelId"), deps.SearchLimit)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": views, "total": total})
	})

	r.GET("/ws", func(c *gin.Context) {
		deps.Gateway.Handle(ctx, c)
	})

	return r
}

func userIDFromToken(token string) string {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return ""
	}
	return claims.UserID
}

func setSession(c *gin.Context, token string) {
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
}

func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrUserAlreadyExists):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidPassword):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case stderrors.Is(err, errors.ErrMessageNotFound), stderrors.Is(err, errors.ErrChannelNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
