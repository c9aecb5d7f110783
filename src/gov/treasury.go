package gov

import (
	"github.com/commune-labs/community-gov/src/api/types"
	"github.com/pkg/errors"
)

// Deposit moves tokens from the depositor into the community treasury.
// Anyone may fund the treasury; there is no governance gate.
func Deposit(b Backend, communityID uint64, depositor string, amount uint64) error {
	if amount == 0 {
		return ErrInvalidDepositAmount
	}
	community, err := b.Community(communityID)
	if err != nil {
		return err
	}
	return b.Transact(func(tx Backend) error {
		return errors.Wrap(tx.Transfer(communityID, depositor, community.Treasury(), amount), "treasury deposit")
	})
}

// Withdraw releases treasury funds to a recipient. The debit is gated on an
// Executed proposal of type transfer that has not paid out before; the
// withdrawn flag is checked and set inside the same transaction, so one
// proposal authorizes exactly one withdrawal.
func Withdraw(b Backend, proposalID uint64, amount uint64, recipient string) error {
	if amount == 0 {
		return ErrInvalidWithdrawalAmount
	}
	proposal, err := b.Proposal(proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != types.StatusExecuted {
		return ErrWithdrawalRequiresProposal
	}
	if proposal.Type != types.ProposalTransfer {
		return ErrInvalidInput
	}
	if proposal.Withdrawn {
		return ErrProposalAlreadyWithdrawn
	}
	treasury := types.TreasuryAddress(proposal.CommunityID)
	balance, err := b.BalanceOf(proposal.CommunityID, treasury)
	if err != nil {
		return err
	}
	if balance < amount {
		return ErrInsufficientTreasuryBalance
	}

	return b.Transact(func(tx Backend) error {
		proposal.Withdrawn = true
		if err := tx.SaveProposal(proposal); err != nil {
			return err
		}
		return errors.Wrap(tx.Transfer(proposal.CommunityID, treasury, recipient, amount), "treasury withdrawal")
	})
}
