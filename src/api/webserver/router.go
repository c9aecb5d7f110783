package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/commune-labs/community-gov/src/api/config"
	"github.com/commune-labs/community-gov/src/api/data"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	store := data.NewStore(db)
	secret := []byte(cfg.JWTSecret)

	authH := NewAuth(rdb, secret)
	communityH := NewCommunities(store, rdb)
	proposalH := NewProposals(store, rdb)
	voteH := NewVotes(store, rdb)
	treasuryH := NewTreasury(store, rdb)
	tokenH := NewTokens(store, rdb)

	// Proposal creation, voting and transfers take attacker-paced traffic.
	writeLimiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/challenge", authH.Challenge)
		v1.POST("/auth/confirm", authH.Confirm)
		v1.POST("/auth/verify", authH.Verify)

		secured := v1.Use(JWTMiddleware(secret))
		secured.POST("/communities", communityH.Create)
		secured.GET("/communities/:id", communityH.Get)
		secured.PUT("/communities/:id/config", communityH.UpdateConfig)
		secured.POST("/communities/:id/members", communityH.RegisterMember)
		secured.PUT("/communities/:id/members/:wallet/reputation", communityH.UpdateReputation)

		secured.POST("/proposals", RateLimitMiddleware(writeLimiter), proposalH.Create)
		secured.GET("/proposals/:id", proposalH.Get)
		secured.POST("/proposals/:id/finalize", proposalH.Finalize)
		secured.POST("/proposals/:id/execute", proposalH.Execute)
		secured.POST("/proposals/:id/cancel", proposalH.Cancel)
		secured.POST("/proposals/:id/votes", RateLimitMiddleware(writeLimiter), voteH.Cast)
		secured.GET("/proposals/:id/votes", voteH.List)

		secured.GET("/communities/:id/treasury", treasuryH.Get)
		secured.POST("/communities/:id/treasury/deposits", treasuryH.Deposit)
		secured.POST("/communities/:id/treasury/withdrawals", treasuryH.Withdraw)

		secured.POST("/communities/:id/transfers", RateLimitMiddleware(writeLimiter), tokenH.Transfer)
		secured.POST("/communities/:id/tokens/mint", tokenH.Mint)
		secured.POST("/communities/:id/tokens/burn", tokenH.Burn)
		secured.GET("/communities/:id/balances/:holder", tokenH.Balance)
	}
}
