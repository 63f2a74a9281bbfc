package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"wrld-names.backend/internal/interfaces/http/handlers"
	"wrld-names.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	registrarHandler *handlers.RegistrarHandler
	nameHandler      *handlers.NameHandler
	resolverHandler  *handlers.ResolverHandler
	adminHandler     *handlers.AdminHandler
	devHandler       *handlers.DevHandler
	ownerAuth        gin.HandlerFunc
	devRoutes        bool
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	caller := middleware.CallerMiddleware()

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/owner-token", d.authHandler.OwnerToken)
		}

		// Registrar routes: reads public, registration attributed to the
		// caller header, pricing and withdrawal admin behind the owner token.
		registrar := v1.Group("/registrar")
		{
			registrar.GET("/status", d.registrarHandler.Status)
			registrar.GET("/prices", d.registrarHandler.GetPrices)
			registrar.POST("/quote", d.registrarHandler.Quote)
			registrar.POST("/register", caller, d.registrarHandler.Register)
			registrar.POST("/register-with-pass", caller, d.registrarHandler.RegisterWithPass)
			registrar.POST("/extend", caller, d.registrarHandler.Extend)
			registrar.POST("/withdraw", caller, d.registrarHandler.Withdraw)

			registrar.POST("/enable", d.ownerAuth, d.registrarHandler.Enable)
			registrar.PUT("/prices", d.ownerAuth, d.registrarHandler.SetPrices)
			registrar.PUT("/prices/:bucket", d.ownerAuth, d.registrarHandler.SetPrice)
			registrar.PUT("/approved-withdrawer", d.ownerAuth, d.registrarHandler.SetApprovedWithdrawer)
		}

		// Name registry routes
		names := v1.Group("/names")
		{
			names.GET("", d.nameHandler.List)
			names.GET("/:name", d.nameHandler.Get)
			names.GET("/:name/owner", d.nameHandler.GetOwner)
			names.GET("/:name/controller", d.nameHandler.GetController)
			names.GET("/:name/expiration", d.nameHandler.GetExpiration)
			names.GET("/:name/token-id", d.nameHandler.GetTokenID)
			names.GET("/:name/records/:type", d.nameHandler.ListRecordKeys)
			names.GET("/:name/records/:type/:key", d.nameHandler.GetRecord)
			names.GET("/:name/entries/:type/:key", d.nameHandler.GetEntry)

			names.PUT("/:name/controller", caller, d.nameHandler.SetController)
			names.PUT("/:name/records/:type/:key", caller, d.nameHandler.SetRecord)
			names.PUT("/:name/entries/:type/:key", caller, d.nameHandler.SetEntry)
			names.POST("/:name/migrate", caller, d.nameHandler.Migrate)

			names.PUT("/:name/alternate-resolver", d.ownerAuth, d.adminHandler.SetAlternateResolver)
		}

		// Token routes (public)
		tokens := v1.Group("/tokens")
		{
			tokens.GET("/:id/name", d.nameHandler.GetTokenName)
			tokens.GET("/:id/uri", d.nameHandler.GetTokenURI)
		}

		// Resolver routes (public)
		resolve := v1.Group("/resolve")
		{
			resolve.GET("/:name", d.resolverHandler.ResolveAddress)
			resolve.GET("/:name/:type", d.resolverHandler.ListKeys)
			resolve.GET("/:name/:type/:key", d.resolverHandler.Resolve)
		}

		// Admin routes (owner token)
		admin := v1.Group("/admin")
		admin.Use(d.ownerAuth)
		{
			admin.PUT("/registrar", d.adminHandler.SetRegistrar)
			admin.PUT("/resolver", d.adminHandler.SetResolver)
			admin.PUT("/bridge", d.adminHandler.SetBridge)
			admin.PUT("/metadata", d.adminHandler.SetMetadata)
		}

		// Dev ledger routes (development env only)
		if d.devRoutes {
			dev := v1.Group("/dev")
			{
				dev.POST("/token/mint", d.devHandler.MintToken)
				dev.POST("/token/approve", caller, d.devHandler.ApproveToken)
				dev.GET("/token/balance/:address", d.devHandler.GetTokenBalance)
				dev.POST("/passes/mint", d.devHandler.MintPasses)
				dev.POST("/passes/transfer", caller, d.devHandler.TransferPasses)
				dev.GET("/passes/balance/:address", d.devHandler.GetPassBalance)
			}
		}
	}
}
