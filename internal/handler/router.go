package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beatvault/beatvault/internal/middleware"
)

type RouterDeps struct {
	Beats         *BeatHandler
	Uploads       *UploadHandler
	Downloads     *DownloadHandler
	Subscriptions *SubscriptionHandler
	Users         *UserHandler
	JWTSecret     []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	// Catalogue browsing and the download gate work anonymously; the gate
	// turns a missing login into a deny reason instead of a 401.
	public := api.Group("")
	public.Use(middleware.OptionalJWTAuth(deps.JWTSecret))
	public.GET("/beats", deps.Beats.List)
	public.GET("/beats/:id", deps.Beats.Get)
	public.GET("/downloads/beats/:id/gate", deps.Downloads.Gate)
	public.POST("/downloads/beat", deps.Downloads.Download)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/beats", deps.Beats.Create)
	authGroup.PUT("/beats/:id", deps.Beats.Update)
	authGroup.POST("/beats/:id/publish", deps.Beats.Publish)
	authGroup.DELETE("/beats/:id", deps.Beats.Delete)
	authGroup.DELETE("/beats/:id/assets/:assetId", deps.Beats.RemoveAsset)

	authGroup.POST("/beats/:id/uploads", deps.Uploads.Start)
	authGroup.GET("/uploads/:sessionId", deps.Uploads.Status)
	authGroup.POST("/uploads/:sessionId/retry", deps.Uploads.Retry)
	authGroup.DELETE("/uploads/:sessionId", deps.Uploads.Remove)

	authGroup.GET("/downloads/history", deps.Downloads.History)

	authGroup.GET("/users/me", deps.Users.Me)

	authGroup.GET("/subscriptions/me", deps.Subscriptions.Me)
	authGroup.GET("/subscriptions/download-stats", deps.Subscriptions.DownloadStats)
	authGroup.POST("/subscriptions/cancel", deps.Subscriptions.Cancel)
	authGroup.POST("/subscriptions/reactivate", deps.Subscriptions.Reactivate)
	authGroup.POST("/subscriptions/update-tier", deps.Subscriptions.UpdateTier)
}
