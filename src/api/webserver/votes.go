package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/commune-labs/community-gov/src/api/data"
	"github.com/commune-labs/community-gov/src/gov"
)

type Votes struct {
	store *data.Store
	rdb   *redis.Client
}

func NewVotes(store *data.Store, rdb *redis.Client) Votes {
	return Votes{store: store, rdb: rdb}
}

func (h Votes) Cast(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Choice string `json:"choice" binding:"required,oneof=yes no abstain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	vote, err := gov.CastVote(h.store, id, c.GetString("addr"), req.Choice, time.Now().Unix())
	if err != nil {
		fail(c, err)
		return
	}

	_ = data.PublishEvent(context.Background(), h.rdb, map[string]interface{}{
		"kind":     "vote_cast",
		"proposal": id,
		"voter":    vote.Voter,
		"choice":   vote.Type,
		"power":    vote.VotingPower,
	})
	c.JSON(http.StatusCreated, vote)
}

func (h Votes) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	proposal, err := h.store.Proposal(id)
	if err != nil {
		fail(c, err)
		return
	}
	votes, err := h.store.Votes(id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposal": gin.H{
			"id":           proposal.ID,
			"status":       proposal.Status,
			"yesVotes":     proposal.YesVotes,
			"noVotes":      proposal.NoVotes,
			"abstainVotes": proposal.AbstainVotes,
			"totalVoters":  proposal.TotalVoters,
			"votingEndsAt": proposal.VotingEndsAt,
		},
		"votes": votes,
	})
}
