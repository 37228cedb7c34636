package server

import (
	account "auction-house/internal/accountService"
	auction "auction-house/internal/auctionService"
	"auction-house/internal/config"
	"auction-house/internal/session"
	handler "auction-house/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService, accountService *account.AccountService, sessions *session.Store, cfg *config.Config) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(SessionMiddleware(sessions, cfg.Session.CookieName))

	auctionHandler := handler.NewAuctionHandler(auctionService, sessions)
	accountHandler := handler.NewAccountHandler(accountService, sessions, cfg.Session.CookieName, cfg.Session.MaxAge)
	watchlistHandler := handler.NewWatchlistHandler(auctionService, sessions)

	router.POST("/register", accountHandler.RegisterHandler)
	router.POST("/login", accountHandler.LoginHandler)
	router.POST("/logout", accountHandler.LogoutHandler)

	listings := router.Group("/listings")
	{
		listings.GET("", auctionHandler.GetActiveListingsHandler)
		listings.GET("/:listing_id", auctionHandler.GetListingHandler)
		listings.POST("", RequireAuth, auctionHandler.CreateListingHandler)
		listings.POST("/:listing_id/bids", RequireAuth, auctionHandler.PlaceBidHandler)
		listings.POST("/:listing_id/close", RequireAuth, auctionHandler.CloseListingHandler)
		listings.POST("/:listing_id/comments", RequireAuth, auctionHandler.AddCommentHandler)
	}

	categories := router.Group("/categories", RequireAuth)
	{
		categories.GET("", auctionHandler.ListCategoriesHandler)
		categories.GET("/:category", auctionHandler.GetListingsByCategoryHandler)
	}

	watchlist := router.Group("/watchlist", RequireAuth)
	{
		watchlist.GET("", watchlistHandler.GetWatchlistHandler)
		watchlist.POST("/:listing_id", watchlistHandler.AddToWatchlistHandler)
		watchlist.DELETE("/:listing_id", watchlistHandler.RemoveFromWatchlistHandler)
	}

	return router
}
