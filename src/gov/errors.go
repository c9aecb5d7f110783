package gov

import "github.com/pkg/errors"

// Sentinel errors for every failure the core can produce. Handlers map these
// onto HTTP status codes; callers compare with errors.Is after unwrapping.
var (
	// community
	ErrUnauthorized               = errors.New("unauthorized: only admin can perform this action")
	ErrInvalidCommunityName       = errors.New("invalid community name: must be 3-50 characters")
	ErrCommunityAlreadyExists     = errors.New("community already exists")
	ErrNoSuchCommunity            = errors.New("community not found")
	ErrInvalidGovernanceThreshold = errors.New("invalid governance threshold: must be 1-100")
	ErrInvalidTransferFee         = errors.New("invalid transfer fee: must be 0-1000 basis points")
	ErrInvalidDecimals            = errors.New("invalid decimals: must be 0-9")

	// members
	ErrMemberAlreadyRegistered = errors.New("member already registered")
	ErrMemberNotFound          = errors.New("member not found")
	ErrInvalidMemberName       = errors.New("invalid member name: must be 1-50 characters")
	ErrInvalidMetadataURI      = errors.New("invalid metadata uri")
	ErrReputationReason        = errors.New("reputation reason must be 5-200 characters")

	// governance
	ErrNoSuchProposal             = errors.New("proposal not found")
	ErrProposalAlreadyExists      = errors.New("proposal with this title already exists")
	ErrInvalidProposalTitle       = errors.New("invalid proposal title")
	ErrInvalidProposalDescription = errors.New("invalid proposal description")
	ErrInvalidVotingPeriod        = errors.New("invalid voting period")
	ErrProposalNotActive          = errors.New("proposal not active")
	ErrProposalNotApproved        = errors.New("proposal not approved")
	ErrProposalAlreadyExecuted    = errors.New("proposal already executed")
	ErrCannotCancelExecuted       = errors.New("cannot cancel executed proposal")
	ErrVotingPeriodEnded          = errors.New("proposal voting period has ended")
	ErrVotingPeriodNotEnded       = errors.New("voting period not ended")
	ErrAlreadyVoted               = errors.New("already voted on this proposal")
	ErrInsufficientTokens         = errors.New("insufficient tokens")

	// token ledger
	ErrInvalidTokenAmount   = errors.New("invalid token amount")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrTokenTransferFailed  = errors.New("token transfer failed")
	ErrTokenMintFailed      = errors.New("token mint failed")
	ErrTokenBurnFailed      = errors.New("token burn failed")

	// treasury
	ErrInsufficientTreasuryBalance = errors.New("insufficient treasury balance")
	ErrInvalidWithdrawalAmount     = errors.New("invalid withdrawal amount")
	ErrWithdrawalRequiresProposal  = errors.New("withdrawal requires executed proposal")
	ErrProposalAlreadyWithdrawn    = errors.New("proposal already authorized a withdrawal")
	ErrInvalidDepositAmount        = errors.New("invalid deposit amount")

	// general
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")
	ErrInvalidInput        = errors.New("invalid input")
)
