package gov

import "github.com/commune-labs/community-gov/src/api/types"

// CastVote records one vote on an active proposal, weighted by the voter's
// token balance at cast time. The snapshot is final: later balance changes do
// not touch the tally, and the composite vote key stops a voter from
// re-snapshotting by voting again (ErrAlreadyVoted, tallies unchanged).
func CastVote(b Backend, proposalID uint64, voter, voteType string, now int64) (*types.Vote, error) {
	switch voteType {
	case types.VoteYes, types.VoteNo, types.VoteAbstain:
	default:
		return nil, ErrInvalidInput
	}

	proposal, err := b.Proposal(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != types.StatusActive {
		return nil, ErrProposalNotActive
	}
	if now > proposal.VotingEndsAt {
		return nil, ErrVotingPeriodEnded
	}
	if _, err := b.Member(proposal.CommunityID, voter); err != nil {
		return nil, err
	}

	power, err := b.BalanceOf(proposal.CommunityID, voter)
	if err != nil {
		return nil, err
	}
	if power == 0 {
		return nil, ErrInsufficientTokens
	}

	// Accumulate before writing so a wrap aborts with nothing changed.
	yes, no, abstain := proposal.YesVotes, proposal.NoVotes, proposal.AbstainVotes
	switch voteType {
	case types.VoteYes:
		yes, err = addU64(yes, power)
	case types.VoteNo:
		no, err = addU64(no, power)
	case types.VoteAbstain:
		abstain, err = addU64(abstain, power)
	}
	if err != nil {
		return nil, err
	}
	voters, err := addU32(proposal.TotalVoters, 1)
	if err != nil {
		return nil, err
	}

	vote := &types.Vote{
		ProposalID:  proposalID,
		Voter:       voter,
		Type:        voteType,
		VotingPower: power,
		VotedAt:     now,
	}

	err = b.Transact(func(tx Backend) error {
		if err := tx.CreateVote(vote); err != nil {
			return err
		}
		proposal.YesVotes, proposal.NoVotes, proposal.AbstainVotes = yes, no, abstain
		proposal.TotalVoters = voters
		return tx.SaveProposal(proposal)
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}
