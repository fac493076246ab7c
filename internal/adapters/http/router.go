package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/KhaledQasim/group-order-app/internal/adapters/signal"
	"github.com/KhaledQasim/group-order-app/internal/app"
	"github.com/KhaledQasim/group-order-app/internal/config"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/KhaledQasim/group-order-app/internal/menu"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "client_token"

// Core is what the router needs from the room engine.
type Core interface {
	signal.Engine
	Snapshot(ctx context.Context, id domain.RoomID) (*domain.Room, bool, error)
	ListRooms(ctx context.Context) ([]app.RoomInfo, error)
}

// ClientTokenMiddleware keeps a stable id in the cookie session. Clients may
// adopt it as their persistent user id.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = string(domain.NewUserID())
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Error().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}
	if cfg.AllowsAnyOrigin() {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}

func SetupRouter(ctx context.Context, cfg *config.Config, core Core, catalog *menu.Catalog, bells *signal.RoomRateLimiter) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg))

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 365, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("GroupOrderSessions", store))
	r.Use(ClientTokenMiddleware())

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/identity", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(clientTokenKey)})
	})

	api.GET("/menu", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": catalog.Items(), "categories": catalog.Categories()})
	})

	api.GET("/menu/:id", func(c *gin.Context) {
		item, ok := catalog.Lookup(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	})

	api.GET("/rooms", func(c *gin.Context) {
		rooms, err := core.ListRooms(c.Request.Context())
		if err != nil {
			unavailable(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
	})

	api.GET("/rooms/:id", func(c *gin.Context) {
		room, ok, err := core.Snapshot(c.Request.Context(), domain.RoomID(c.Param("id")))
		if err != nil {
			unavailable(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": app.ErrRoomNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": room})
	})

	ctrl := signal.NewSignalWSController(core, bells, signal.OptionsFromConfig(cfg))
	api.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString(clientTokenKey)).Msg("ws signal endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}

func unavailable(c *gin.Context, err error) {
	status := http.StatusServiceUnavailable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	log.Error().Err(err).Str("module", "adapters.http").Msg("core unavailable")
	c.JSON(status, gin.H{"error": err.Error()})
}
