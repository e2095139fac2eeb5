package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c9s/wavegif/pkg/render"
)

const errorMessagePrefix = "Error generating GIF: "

func (s *Server) newEngine() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{"Origin"},
		ExposeHeaders: []string{"Content-Length", "X-Request-Id"},
		AllowMethods:  []string{"GET"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var handlers []gin.HandlerFunc
	if s.RateLimit > 0 {
		handlers = append(handlers, rateLimit(s.RateLimit))
	}
	handlers = append(handlers, s.renderGIF)

	r.GET("/", handlers...)
	return r
}

// renderGIF runs the whole render pipeline for the request. The render is
// detached from the client connection, a disconnected client does not stop it.
func (s *Server) renderGIF(c *gin.Context) {
	id := uuid.NewString()
	c.Header("X-Request-Id", id)

	log.WithField("render", id).Infof("received request for chart gif from %s", c.ClientIP())

	ctx := render.WithRequestID(context.WithoutCancel(c.Request.Context()), id)
	err := s.Renderer.RenderTo(ctx, func(result *render.Result) error {
		c.Data(http.StatusOK, "image/gif", result.GIF)
		return nil
	})

	if err != nil {
		c.String(http.StatusInternalServerError, "%s%s", errorMessagePrefix, err.Error())
	}
}
