package router

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/cache"
	"reviewhub/internal/httpapi/auth"
	"reviewhub/internal/httpapi/handler"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"
	"reviewhub/internal/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options carries everything the route table depends on. Tests swap in
// a sqlite DB, a nil cache and a recording mailer.
type Options struct {
	DB        *gorm.DB
	Ratings   *cache.RatingCache
	Signer    *auth.TokenSigner
	Mailer    mailer.Mailer
	Logger    *slog.Logger
	CodeBytes int

	// requests per second and burst for the /auth endpoints; zero
	// disables throttling
	AuthRateLimit float64
	AuthRateBurst int
}

// Setup builds the full engine: repositories, services, handlers and
// the /v1 route table.
func Setup(opts Options) *gin.Engine {
	userRepo := repository.NewUserRepository(opts.DB)
	categoryRepo := repository.NewCategoryRepository(opts.DB)
	genreRepo := repository.NewGenreRepository(opts.DB)
	titleRepo := repository.NewTitleRepository(opts.DB)
	reviewRepo := repository.NewReviewRepository(opts.DB)
	commentRepo := repository.NewCommentRepository(opts.DB)

	authService := service.NewAuthService(userRepo, opts.Signer, opts.Mailer, opts.Logger, opts.CodeBytes)
	userService := service.NewUserService(userRepo, opts.Logger)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, opts.Ratings)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, opts.Ratings)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	authHandler := handler.NewAuthHandler(authService, opts.Logger)
	userHandler := handler.NewUserHandler(userService, opts.Logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, opts.Logger)
	genreHandler := handler.NewGenreHandler(genreService, opts.Logger)
	titleHandler := handler.NewTitleHandler(titleService, opts.Logger)
	reviewHandler := handler.NewReviewHandler(reviewService, opts.Logger)
	commentHandler := handler.NewCommentHandler(commentService, opts.Logger)

	authn := middleware.NewAuthenticator(opts.Signer, userRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")

	authGroup := v1.Group("/auth")
	if opts.AuthRateLimit > 0 {
		limiter := middleware.NewRateLimiter(opts.AuthRateLimit, opts.AuthRateBurst)
		authGroup.Use(limiter.Limit())
	}
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/token", authHandler.Token)

	users := v1.Group("/users", authn.RequireAuth())
	users.GET("", authn.RequireAdmin(), userHandler.List)
	users.POST("", authn.RequireAdmin(), userHandler.Create)
	// the me/:username split happens inside the handler; gin cannot
	// register a static sibling of a path parameter
	users.GET("/:username", userHandler.Get)
	users.PATCH("/:username", userHandler.Update)
	users.DELETE("/:username", userHandler.Delete)

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:slug", categoryHandler.Get)
	categories.POST("", authn.RequireAuth(), authn.RequireAdmin(), categoryHandler.Create)
	categories.DELETE("/:slug", authn.RequireAuth(), authn.RequireAdmin(), categoryHandler.Delete)

	genres := v1.Group("/genres")
	genres.GET("", genreHandler.List)
	genres.GET("/:slug", genreHandler.Get)
	genres.POST("", authn.RequireAuth(), authn.RequireAdmin(), genreHandler.Create)
	genres.DELETE("/:slug", authn.RequireAuth(), authn.RequireAdmin(), genreHandler.Delete)

	titles := v1.Group("/titles")
	titles.GET("", titleHandler.List)
	titles.GET("/:title_id", titleHandler.Get)
	titles.POST("", authn.RequireAuth(), authn.RequireAdmin(), titleHandler.Create)
	titles.PATCH("/:title_id", authn.RequireAuth(), authn.RequireAdmin(), titleHandler.Update)
	titles.DELETE("/:title_id", authn.RequireAuth(), authn.RequireAdmin(), titleHandler.Delete)

	reviews := v1.Group("/titles/:title_id/reviews")
	reviews.GET("", reviewHandler.List)
	reviews.GET("/:review_id", reviewHandler.Get)
	reviews.POST("", authn.RequireAuth(), reviewHandler.Create)
	reviews.PATCH("/:review_id", authn.RequireAuth(), reviewHandler.Update)
	reviews.DELETE("/:review_id", authn.RequireAuth(), reviewHandler.Delete)

	comments := v1.Group("/titles/:title_id/reviews/:review_id/comments")
	comments.GET("", commentHandler.List)
	comments.GET("/:comment_id", commentHandler.Get)
	comments.POST("", authn.RequireAuth(), commentHandler.Create)
	comments.PATCH("/:comment_id", authn.RequireAuth(), commentHandler.Update)
	comments.DELETE("/:comment_id", authn.RequireAuth(), commentHandler.Delete)

	return r
}
