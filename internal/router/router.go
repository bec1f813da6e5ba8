package router

import (
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/config"
	"github.com/robertopeiro12/buscocredito-sub002/internal/handler"
	"github.com/robertopeiro12/buscocredito-sub002/internal/middleware"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repositories groups the persistence adapter behind every service. Tests
// build it from the in-memory implementations.
type Repositories struct {
	Notificaciones repository.NotificacionRepository
	Tokens         repository.SignupTokenRepository
	Cuentas        repository.CuentaRepository
	Solicitudes    repository.SolicitudRepository
	Credenciales   repository.CredencialRepository
}

// NewRepositories builds the store-backed persistence adapter.
func NewRepositories(db *gorm.DB, mdb *mongo.Database) Repositories {
	return Repositories{
		Notificaciones: repository.NewNotificacionRepository(mdb),
		Tokens:         repository.NewSignupTokenRepository(mdb),
		Cuentas:        repository.NewCuentaRepository(mdb),
		Solicitudes:    repository.NewSolicitudRepository(mdb),
		Credenciales:   repository.NewCredencialRepository(db),
	}
}

// Deps are the collaborators New wires into the engine.
type Deps struct {
	Repos Repositories
	// Mail receives notification e-mails; nil disables mirroring.
	Mail service.EmailDispatcher
	// Health serves GET /health; nil leaves the route out.
	Health gin.HandlerFunc
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← MongoDB/Postgres
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	if cfg.RateLimit > 0 {
		r.Use(middleware.RateLimiter(cfg.RateLimit, time.Minute))
	}

	repos := deps.Repos

	// ── Services ─────────────────────────────────────────────────────────────
	notifSvc := service.NewNotificacionService(repos.Notificaciones, repos.Cuentas, deps.Mail)
	tokenSvc := service.NewTokenService(repos.Tokens)
	subcuentaSvc := service.NewSubcuentaService(repos.Credenciales, repos.Cuentas)
	authSvc := service.NewAuthService(repos.Credenciales, repos.Cuentas, repos.Tokens, cfg)
	propuestaSvc := service.NewPropuestaService(repos.Solicitudes, repos.Notificaciones, repos.Cuentas, deps.Mail)

	// ── Handlers ─────────────────────────────────────────────────────────────
	notifH := handler.NewNotificacionesHandler(notifSvc)
	tokensH := handler.NewTokensHandler(tokenSvc)
	subcuentasH := handler.NewSubcuentasHandler(subcuentaSvc)
	authH := handler.NewAuthHandler(authSvc)
	propuestasH := handler.NewPropuestasHandler(propuestaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	if deps.Health != nil {
		r.GET("/health", deps.Health)
	}

	sensitive := middleware.SensitiveRateLimiter()

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", sensitive, authH.Login)
		auth.POST("/registro-banco", sensitive, authH.RegistroBanco)
	}

	tokens := r.Group("/v1/tokens")
	{
		tokens.POST("/validar", sensitive, tokensH.Validar)
		tokens.POST("/consumir", tokensH.Consumir)
	}

	notif := r.Group("/v1/notificaciones")
	{
		notif.POST("", notifH.Crear)
		notif.POST("/listar", notifH.Listar)
		notif.POST("/no-leidas", notifH.NoLeidas)
		notif.POST("/marcar-leida", notifH.MarcarLeida)
		notif.POST("/limpiar", notifH.Limpiar)
	}

	r.POST("/v1/propuestas/notificar", propuestasH.NotificarNueva)
	r.POST("/v1/solicitudes/notificar-aceptacion", propuestasH.NotificarAceptacion)

	// Protected routes: only bank administrators manage their sales accounts.
	subcuentas := r.Group("/v1/subcuentas",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireTipo(model.TipoBancoAdmin),
	)
	{
		subcuentas.POST("", subcuentasH.Crear)
		subcuentas.POST("/eliminar", subcuentasH.Eliminar)
	}

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
