package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/http/handlers"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, jwtmw gin.HandlerFunc, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/send-verification-code", ah.SendCode)
	auth.POST("/verify-code", ah.VerifyCode)
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)

	v := r.Group("/auth").Use(jwtmw, cb.Enforce())
	v.GET("/me", ah.Me)
	v.PUT("/profile", ah.UpdateProfile)

	return r
}
