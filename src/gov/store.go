package gov

import "github.com/commune-labs/community-gov/src/api/types"

// Store is the record side of the backend. Create methods must reject an
// existing key with the matching sentinel error (ErrCommunityAlreadyExists,
// ErrProposalAlreadyExists, ErrAlreadyVoted, ErrMemberAlreadyRegistered)
// rather than overwrite; lookups return the matching not-found sentinel.
type Store interface {
	Community(id uint64) (*types.Community, error)
	CreateCommunity(*types.Community) error
	SaveCommunity(*types.Community) error

	Member(communityID uint64, wallet string) (*types.Member, error)
	CreateMember(*types.Member) error
	SaveMember(*types.Member) error

	Proposal(id uint64) (*types.Proposal, error)
	CreateProposal(*types.Proposal) error
	SaveProposal(*types.Proposal) error

	CreateVote(*types.Vote) error
	Votes(proposalID uint64) ([]types.Vote, error)
}

// Ledger is the token balance collaborator. The core never stores balances
// itself; it only moves them through this interface. Transfer and Burn fail
// with ErrInsufficientBalance when the debit exceeds the holder's balance.
type Ledger interface {
	BalanceOf(communityID uint64, holder string) (uint64, error)
	Transfer(communityID uint64, from, to string, amount uint64) error
	Mint(communityID uint64, to string, amount uint64) error
	Burn(communityID uint64, from string, amount uint64) error
}

// Backend combines records and ledger under one transaction boundary.
// Transact runs fn against a transactional view; if fn returns an error no
// mutation made inside it survives. Every core operation validates first and
// mutates only inside Transact.
type Backend interface {
	Store
	Ledger
	Transact(fn func(Backend) error) error
}
