package webserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"github.com/commune-labs/community-gov/src/api/data"
	"github.com/commune-labs/community-gov/src/gov"
)

type Communities struct {
	store     *data.Store
	rdb       *redis.Client
	sanitizer *bluemonday.Policy
}

func NewCommunities(store *data.Store, rdb *redis.Client) Communities {
	return Communities{store: store, rdb: rdb, sanitizer: bluemonday.StrictPolicy()}
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad " + name})
		return 0, false
	}
	return id, true
}

func (h Communities) Create(c *gin.Context) {
	var req struct {
		Name                string `json:"name" binding:"required"`
		TokenSymbol         string `json:"tokenSymbol" binding:"required"`
		TokenDecimals       uint8  `json:"tokenDecimals"`
		GovernanceThreshold uint8  `json:"governanceThreshold" binding:"required"`
		TransferFeeBps      uint16 `json:"transferFeeBps"`
		InitialSupply       uint64 `json:"initialSupply"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	community, err := gov.InitCommunity(h.store, gov.InitCommunityInput{
		Admin:               c.GetString("addr"),
		Name:                h.sanitizer.Sanitize(req.Name),
		TokenSymbol:         h.sanitizer.Sanitize(req.TokenSymbol),
		TokenDecimals:       req.TokenDecimals,
		GovernanceThreshold: req.GovernanceThreshold,
		TransferFeeBps:      req.TransferFeeBps,
		InitialSupply:       req.InitialSupply,
	}, time.Now().Unix())
	if err != nil {
		fail(c, err)
		return
	}

	_ = data.PublishEvent(context.Background(), h.rdb, map[string]interface{}{
		"kind":      "community_created",
		"community": community.ID,
		"admin":     community.Admin,
	})
	c.JSON(http.StatusCreated, community)
}

func (h Communities) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	community, err := h.store.Community(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h Communities) UpdateConfig(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		NewAdmin     *string `json:"newAdmin"`
		NewThreshold *uint8  `json:"newThreshold"`
		NewFeeBps    *uint16 `json:"newFeeBps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	community, err := gov.UpdateConfig(h.store, id, c.GetString("addr"), gov.ConfigUpdate{
		NewAdmin:     req.NewAdmin,
		NewThreshold: req.NewThreshold,
		NewFeeBps:    req.NewFeeBps,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h Communities) RegisterMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name" binding:"required"`
		MetadataURI string `json:"metadataUri"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	member, err := gov.RegisterMember(h.store, id, c.GetString("addr"),
		h.sanitizer.Sanitize(req.Name), req.MetadataURI, time.Now().Unix())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h Communities) UpdateReputation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Delta  int64  `json:"delta" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	member, err := gov.UpdateReputation(h.store, id, c.GetString("addr"),
		c.Param("wallet"), req.Delta, h.sanitizer.Sanitize(req.Reason))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}
