package webserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/commune-labs/community-gov/src/api/data"
	"github.com/commune-labs/community-gov/src/gov"
)

type Tokens struct {
	store *data.Store
	rdb   *redis.Client
}

func NewTokens(store *data.Store, rdb *redis.Client) Tokens {
	return Tokens{store: store, rdb: rdb}
}

func (h Tokens) Transfer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Recipient string `json:"recipient" binding:"required,min=3,max=128"`
		Amount    uint64 `json:"amount" binding:"required"`
		Memo      string `json:"memo" binding:"max=256"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	sender := c.GetString("addr")
	fee, err := gov.TransferTokens(h.store, id, sender, req.Recipient, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}

	_ = data.PublishEvent(context.Background(), h.rdb, map[string]interface{}{
		"kind":      "token_transfer",
		"community": id,
		"sender":    sender,
		"recipient": req.Recipient,
		"amount":    req.Amount,
		"fee":       fee,
		"memo":      req.Memo,
	})
	c.JSON(http.StatusCreated, gin.H{"amount": req.Amount, "fee": fee})
}

func (h Tokens) Mint(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		To     string `json:"to" binding:"required,min=3,max=128"`
		Amount uint64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := gov.MintTokens(h.store, id, c.GetString("addr"), req.To, req.Amount); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h Tokens) Burn(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Amount uint64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if err := gov.BurnTokens(h.store, id, c.GetString("addr"), req.Amount); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h Tokens) Balance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	holder := c.Param("holder")
	if _, err := h.store.Community(id); err != nil {
		fail(c, err)
		return
	}
	balance, err := h.store.BalanceOf(id, holder)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"community": id, "holder": holder, "balance": balance})
}
