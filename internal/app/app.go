package app

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/config"
	httpx "github.com/AI-Matrix-Zoo/smart-community-sub000/internal/http"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/http/handlers"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/http/middleware"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/infrastructure/auth"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/infrastructure/database"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/infrastructure/notifications"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/infrastructure/repositories"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/services"
)

// Run wires every dependency exactly once and starts the HTTP server.
// All services are constructed here and passed by reference; nothing is
// reached through globals.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	cache, err := buildVerificationCache(cfg)
	if err != nil {
		return err
	}

	validMinutes := int(cfg.CodeTTL.Minutes())
	notifier := notifications.NewDispatcher(cfg.SMTP, cfg.SMS, cfg.IsProduction(), validMinutes)

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	userRepo := repositories.NewUserRepository(gdb)
	registrationSvc := services.NewRegistrationService(userRepo, cache, passwordSvc, tokenSvc)
	authSvc := services.NewAuthService(userRepo, passwordSvc, tokenSvc)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(registrationSvc, authSvc, cache, notifier, cfg.UploadDir, cfg.ExposeCode)
	jwtMW := middleware.AuthMiddleware(tokenSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, jwtMW, casbinMW)

	seedPolicies(cas)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	return http.ListenAndServe(addr, r)
}

func buildVerificationCache(cfg *config.Config) (domain.VerificationCache, error) {
	if cfg.CodeStore != "redis" {
		return services.NewMemoryVerificationCache(cfg.CodeTTL), nil
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	return services.NewRedisVerificationCache(rdb.Client, cfg.CodeTTL), nil
}

func seedPolicies(cas *auth.CasbinService) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	for _, role := range []string{"role_USER", "role_PROPERTY", "role_ADMIN"} {
		cas.E.AddPolicy(role, "/auth/me", "GET")
		cas.E.AddPolicy(role, "/auth/profile", "PUT")
	}
	_ = cas.E.SavePolicy()
	log.Println("casbin: seeded default policies")
}
