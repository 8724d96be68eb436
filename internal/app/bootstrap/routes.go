// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/dalemusser/devshowcase/internal/app/features/authgoogle"
	healthfeature "github.com/dalemusser/devshowcase/internal/app/features/health"
	logoutfeature "github.com/dalemusser/devshowcase/internal/app/features/logout"
	projectsfeature "github.com/dalemusser/devshowcase/internal/app/features/projects"
	uploadsfeature "github.com/dalemusser/devshowcase/internal/app/features/uploads"
	usersfeature "github.com/dalemusser/devshowcase/internal/app/features/users"
	projectstore "github.com/dalemusser/devshowcase/internal/app/store/projects"
	userstore "github.com/dalemusser/devshowcase/internal/app/store/users"
	"github.com/dalemusser/devshowcase/internal/app/system/assets"
	"github.com/dalemusser/devshowcase/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The session middleware runs globally so
// every handler can read the current user via auth.CurrentUser(r).
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase)
	projects := projectstore.New(deps.MongoDatabase, logger)
	assetClient := assets.NewClient(appCfg.AssetsBaseURL, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	authHandler := authgooglefeature.NewHandler(
		users, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.SessionKey,
		secure, logger,
	)
	r.Mount("/auth/google", authgooglefeature.Routes(authHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Project and user APIs
	projectsHandler := projectsfeature.NewHandler(projects, logger)
	r.Mount("/api/projects", projectsfeature.Routes(projectsHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(users, projects, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler, sessionMgr))
	usersfeature.MountSession(r, usersHandler)

	// Asset service pass-through
	uploadsHandler := uploadsfeature.NewHandler(assetClient, logger)
	uploadsfeature.MountRoutes(r, uploadsHandler, sessionMgr)

	return r, nil
}
