package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/olegsavin/brandmatch/internal/config"
	authsvc "github.com/olegsavin/brandmatch/internal/services/auth"
	conversationssvc "github.com/olegsavin/brandmatch/internal/services/conversations"
	discoverysvc "github.com/olegsavin/brandmatch/internal/services/discovery"
	matchessvc "github.com/olegsavin/brandmatch/internal/services/matches"
	profilessvc "github.com/olegsavin/brandmatch/internal/services/profiles"
	userssvc "github.com/olegsavin/brandmatch/internal/services/users"
	"github.com/olegsavin/brandmatch/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService         *authsvc.Service
	DiscoveryService    *discoverysvc.Service
	MatchService        *matchessvc.Service
	ProfileService      *profilessvc.Service
	ConversationService *conversationssvc.Service
	UserService         *userssvc.Service
	Logger              *zap.Logger
	Config              config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	discoverHandler := handlers.NewDiscoverHandler(deps.DiscoveryService)
	decideHandler := handlers.NewDecideHandler(deps.MatchService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	conversationsHandler := handlers.NewConversationsHandler(deps.ConversationService)
	usersHandler := handlers.NewUsersHandler(deps.UserService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	marketplaceRoleMW := RequireRole("creator", "brand")
	adminRoleMW := RequireRole("admin")

	r.Get("/healthz", handlers.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/session", authHandler.IssueSession)
			r.Post("/refresh", authHandler.Refresh)
			r.With(authMW).Post("/logout", authHandler.Logout)
		})

		r.With(authMW, marketplaceRoleMW).Get("/discover", discoverHandler.Handle)
		r.With(authMW, marketplaceRoleMW).Post("/discover/decide", decideHandler.Handle)

		r.With(authMW).Get("/matches", matchesHandler.List)
		r.With(authMW).Put("/matches/{matchID}/status", matchesHandler.UpdateStatus)

		r.With(authMW).Put("/profile/creator", profileHandler.SaveCreator)
		r.With(authMW).Put("/profile/brand", profileHandler.SaveBrand)
		r.With(authMW).Get("/profiles/{userID}", profileHandler.Get)

		r.With(authMW).Get("/conversations", conversationsHandler.List)

		r.With(authMW, adminRoleMW).Put("/users/{userID}/verified", usersHandler.SetVerified)
	})
}
