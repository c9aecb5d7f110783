package webserver

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/commune-labs/community-gov/src/api/data"
)

// Auth issues JWTs for wallet addresses. Proof of key possession happens
// outside this service: the platform's wallet layer watches for the nonce and
// confirms it through the internal Confirm endpoint, after which Verify
// exchanges the confirmed challenge for a token.
type Auth struct {
	rdb       *redis.Client
	jwtSecret []byte
}

func NewAuth(rdb *redis.Client, secret []byte) Auth {
	return Auth{rdb: rdb, jwtSecret: secret}
}

func (a Auth) Challenge(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required,min=3,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	nonce := uuid.NewString()
	if err := data.SetNonce(c, a.rdb, req.Address, nonce); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonce": nonce})
}

// Confirm is called by the surrounding platform once it has verified key
// possession for the address. Guarded by the shared internal token.
func (a Auth) Confirm(c *gin.Context) {
	token := c.GetHeader("X-Internal-Token")
	if subtle.ConstantTimeCompare([]byte(token), a.jwtSecret) != 1 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req struct {
		Address string `json:"address" binding:"required,min=3,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := data.ConfirmNonce(c, a.rdb, req.Address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (a Auth) Verify(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required,min=3,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	nonce, err := data.GetAndDelNonce(c, a.rdb, req.Address)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "challenge expired"})
		return
	}
	if nonce != "CONFIRMED" {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "challenge not confirmed"})
		return
	}
	token, err := issueJWT(req.Address, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
