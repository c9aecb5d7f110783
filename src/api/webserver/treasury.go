package webserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/commune-labs/community-gov/src/api/data"
	"github.com/commune-labs/community-gov/src/api/types"
	"github.com/commune-labs/community-gov/src/gov"
)

type Treasury struct {
	store *data.Store
	rdb   *redis.Client
}

func NewTreasury(store *data.Store, rdb *redis.Client) Treasury {
	return Treasury{store: store, rdb: rdb}
}

func (h Treasury) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.store.Community(id); err != nil {
		fail(c, err)
		return
	}
	balance, err := h.store.BalanceOf(id, types.TreasuryAddress(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"community": id, "balance": balance})
}

func (h Treasury) Deposit(c *gin.Context) {
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

	depositor := c.GetString("addr")
	if err := gov.Deposit(h.store, id, depositor, req.Amount); err != nil {
		fail(c, err)
		return
	}

	_ = data.PublishEvent(context.Background(), h.rdb, map[string]interface{}{
		"kind":      "treasury_deposit",
		"community": id,
		"depositor": depositor,
		"amount":    req.Amount,
	})
	c.Status(http.StatusCreated)
}

func (h Treasury) Withdraw(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ProposalID uint64 `json:"proposalId" binding:"required"`
		Amount     uint64 `json:"amount" binding:"required"`
		Recipient  string `json:"recipient" binding:"required,min=3,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	// The authorizing proposal must belong to this community.
	proposal, err := h.store.Proposal(req.ProposalID)
	if err != nil {
		fail(c, err)
		return
	}
	if proposal.CommunityID != id {
		c.JSON(http.StatusBadRequest, gin.H{"err": "proposal belongs to another community"})
		return
	}

	if err := gov.Withdraw(h.store, req.ProposalID, req.Amount, req.Recipient); err != nil {
		fail(c, err)
		return
	}

	_ = data.PublishEvent(context.Background(), h.rdb, map[string]interface{}{
		"kind":      "treasury_withdrawal",
		"community": id,
		"proposal":  req.ProposalID,
		"recipient": req.Recipient,
		"amount":    req.Amount,
	})
	c.Status(http.StatusCreated)
}
