package gov

import "github.com/commune-labs/community-gov/src/api/types"

// Voting duration ceiling, 30 days in seconds.
const MaxVotingDuration = 30 * 24 * 60 * 60

// CreateProposalInput carries the proposer-supplied fields of a new proposal.
type CreateProposalInput struct {
	CommunityID    uint64
	Proposer       string
	Title          string
	Description    string
	Type           string
	ExecutionData  []byte
	VotingDuration int64 // seconds
}

func validProposalType(t string) bool {
	switch t {
	case types.ProposalTransfer, types.ProposalConfigChange,
		types.ProposalMemberAction, types.ProposalCustom:
		return true
	}
	return false
}

// CreateProposal opens a new proposal in the Active state. The proposer must
// be a registered member of the community. Proposals are unique per
// (community, title); a duplicate fails with ErrProposalAlreadyExists.
func CreateProposal(b Backend, in CreateProposalInput, now int64) (*types.Proposal, error) {
	if n := len(in.Title); n < 3 || n > 100 {
		return nil, ErrInvalidProposalTitle
	}
	if n := len(in.Description); n < 10 || n > 500 {
		return nil, ErrInvalidProposalDescription
	}
	if len(in.ExecutionData) > 1024 || !validProposalType(in.Type) {
		return nil, ErrInvalidInput
	}
	if in.VotingDuration <= 0 || in.VotingDuration > MaxVotingDuration {
		return nil, ErrInvalidVotingPeriod
	}
	if _, err := b.Community(in.CommunityID); err != nil {
		return nil, err
	}
	if _, err := b.Member(in.CommunityID, in.Proposer); err != nil {
		return nil, err
	}

	endsAt, err := addI64(now, in.VotingDuration)
	if err != nil {
		return nil, err
	}

	proposal := &types.Proposal{
		CommunityID:   in.CommunityID,
		Proposer:      in.Proposer,
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
		ExecutionData: in.ExecutionData,
		Status:        types.StatusActive,
		VotingEndsAt:  endsAt,
		CreatedAt:     now,
	}

	err = b.Transact(func(tx Backend) error {
		return tx.CreateProposal(proposal)
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// FinalizeProposal computes the outcome of a proposal whose voting window has
// closed. Abstain votes count toward neither the quorum denominator nor the
// comparison. The transition is one-way: a second finalize fails with
// ErrProposalNotActive.
func FinalizeProposal(b Backend, proposalID uint64, now int64) (*types.Proposal, error) {
	proposal, err := b.Proposal(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != types.StatusActive {
		return nil, ErrProposalNotActive
	}
	if now <= proposal.VotingEndsAt {
		return nil, ErrVotingPeriodNotEnded
	}
	community, err := b.Community(proposal.CommunityID)
	if err != nil {
		return nil, err
	}

	totalVotes, err := addU64(proposal.YesVotes, proposal.NoVotes)
	if err != nil {
		return nil, err
	}
	thresholdVotes, err := mulDiv(totalVotes, uint64(community.GovernanceThreshold), 100)
	if err != nil {
		return nil, err
	}

	if proposal.YesVotes >= thresholdVotes && proposal.YesVotes > proposal.NoVotes {
		proposal.Status = types.StatusApproved
	} else {
		proposal.Status = types.StatusRejected
	}

	err = b.Transact(func(tx Backend) error {
		return tx.SaveProposal(proposal)
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// ExecuteProposal marks an approved proposal executed. This is the single
// authorization event the treasury gateway checks before releasing funds.
func ExecuteProposal(b Backend, proposalID uint64, now int64) (*types.Proposal, error) {
	proposal, err := b.Proposal(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != types.StatusApproved {
		return nil, ErrProposalNotApproved
	}
	if proposal.ExecutedAt != nil {
		return nil, ErrProposalAlreadyExecuted
	}

	proposal.Status = types.StatusExecuted
	executedAt := now
	proposal.ExecutedAt = &executedAt

	err = b.Transact(func(tx Backend) error {
		return tx.SaveProposal(proposal)
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// CancelProposal moves a proposal to Cancelled from any non-executed state.
// Only the proposer or the community admin may cancel.
func CancelProposal(b Backend, proposalID uint64, caller string) (*types.Proposal, error) {
	proposal, err := b.Proposal(proposalID)
	if err != nil {
		return nil, err
	}
	community, err := b.Community(proposal.CommunityID)
	if err != nil {
		return nil, err
	}
	if caller != proposal.Proposer && caller != community.Admin {
		return nil, ErrUnauthorized
	}
	if proposal.Status == types.StatusExecuted {
		return nil, ErrCannotCancelExecuted
	}

	proposal.Status = types.StatusCancelled

	err = b.Transact(func(tx Backend) error {
		return tx.SaveProposal(proposal)
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}
