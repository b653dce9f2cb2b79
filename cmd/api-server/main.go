package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lothub/internal/admin"
	"lothub/internal/auth"
	"lothub/internal/catalog"
	"lothub/internal/events"
	"lothub/internal/pages"
	"lothub/internal/reviews"
	"lothub/internal/submissions"
	"lothub/internal/suppliers"
	"lothub/pkg/database"
	"lothub/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	dirCfg := utils.LoadDirectoryConfig()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Event fan-out: operator dashboards tail catalog changes over WS or TCP.
	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))
	tcpSrv := events.NewServer(dirCfg.EventsAddr, hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Repos and the resolution engine over them
	supplierRepo := suppliers.NewRepo(db)
	pageRepo := pages.NewRepo(db)
	reviewRepo := reviews.NewRepo(db)
	store := suppliers.NewCatalogStore(supplierRepo, reviewRepo, pageRepo)
	directory := catalog.NewDirectory(store)
	resolver := catalog.NewResolver(store, dirCfg.Recommended)

	// Public directory
	supplierHandler := suppliers.NewHandler(supplierRepo, directory, store)
	supplierHandler.RegisterRoutes(router.Group("/suppliers"))
	supplierHandler.RegisterFilterRoutes(router.Group("/meta"))

	pageHandler := pages.NewHandler(pageRepo, resolver)
	pageHandler.RegisterRoutes(router.Group("/pages"))

	reviewHandler := reviews.NewHandler(reviewRepo, supplierRepo, hub)
	reviewHandler.RegisterPublicRoutes(&router.RouterGroup)

	submissionRepo := submissions.NewRepo(db)
	submissionHandler := submissions.NewHandler(submissionRepo, supplierRepo, hub)
	submissionHandler.RegisterPublicRoutes(&router.RouterGroup)

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Buyer routes (any authenticated user)
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))
	reviewHandler.RegisterProtectedRoutes(protected)

	protected.GET("/users/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"email":    claims.Email,
			"is_admin": claims.IsAdmin,
		})
	})

	// Admin console
	adminGroup := router.Group("/admin")
	adminGroup.Use(auth.AuthMiddleware(tokenSvc, authRepo), auth.AdminMiddleware())
	admin.NewHandler(supplierRepo, pageRepo, hub).RegisterRoutes(adminGroup)
	submissionHandler.RegisterAdminRoutes(adminGroup)

	httpSrv := &http.Server{
		Addr:    dirCfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", dirCfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}
