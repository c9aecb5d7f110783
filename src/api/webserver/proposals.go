package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"github.com/commune-labs/community-gov/src/api/data"
	"github.com/commune-labs/community-gov/src/api/types"
	"github.com/commune-labs/community-gov/src/gov"
)

type Proposals struct {
	store     *data.Store
	rdb       *redis.Client
	sanitizer *bluemonday.Policy
}

func NewProposals(store *data.Store, rdb *redis.Client) Proposals {
	// Titles and descriptions come from arbitrary wallets; keep basic
	// markdown formatting, strip everything else.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("p", "br", "strong", "em", "code", "pre", "blockquote")
	sanitizer.AllowElements("ul", "ol", "li")
	return Proposals{store: store, rdb: rdb, sanitizer: sanitizer}
}

func (h Proposals) publish(proposal *types.Proposal, kind string) {
	_ = data.PublishEvent(context.Background(), h.rdb, map[string]interface{}{
		"kind":      kind,
		"proposal":  proposal.ID,
		"community": proposal.CommunityID,
		"status":    proposal.Status,
		"title":     proposal.Title,
	})
}

func (h Proposals) Create(c *gin.Context) {
	var req struct {
		CommunityID    uint64 `json:"communityId" binding:"required"`
		Title          string `json:"title" binding:"required"`
		Description    string `json:"description" binding:"required"`
		Type           string `json:"type" binding:"required,oneof=transfer config_change member_action custom"`
		ExecutionData  []byte `json:"executionData"`
		VotingDuration int64  `json:"votingDuration" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	proposal, err := gov.CreateProposal(h.store, gov.CreateProposalInput{
		CommunityID:    req.CommunityID,
		Proposer:       c.GetString("addr"),
		Title:          h.sanitizer.Sanitize(req.Title),
		Description:    h.sanitizer.Sanitize(req.Description),
		Type:           req.Type,
		ExecutionData:  req.ExecutionData,
		VotingDuration: req.VotingDuration,
	}, time.Now().Unix())
	if err != nil {
		fail(c, err)
		return
	}

	h.publish(proposal, "proposal_created")
	c.JSON(http.StatusCreated, proposal)
}

func (h Proposals) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	proposal, err := h.store.Proposal(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (h Proposals) Finalize(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	proposal, err := gov.FinalizeProposal(h.store, id, time.Now().Unix())
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(proposal, "proposal_finalized")
	c.JSON(http.StatusOK, proposal)
}

func (h Proposals) Execute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	proposal, err := gov.ExecuteProposal(h.store, id, time.Now().Unix())
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(proposal, "proposal_executed")
	c.JSON(http.StatusOK, proposal)
}

func (h Proposals) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	proposal, err := gov.CancelProposal(h.store, id, c.GetString("addr"))
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(proposal, "proposal_cancelled")
	c.JSON(http.StatusOK, proposal)
}
