package gov

import (
	"errors"
	"testing"

	"github.com/commune-labs/community-gov/src/api/types"
)

// Drives a transfer proposal through vote, finalize and execute so Withdraw
// has something to authorize against.
func executedTransferProposal(t *testing.T, b *memBackend, communityID uint64, proposer, title string) *types.Proposal {
	t.Helper()
	proposal, err := CreateProposal(b, CreateProposalInput{
		CommunityID:    communityID,
		Proposer:       proposer,
		Title:          title,
		Description:    "release funds from the treasury",
		Type:           types.ProposalTransfer,
		VotingDuration: 3600,
	}, 1000)
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	if _, err := CastVote(b, proposal.ID, proposer, types.VoteYes, 2000); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := FinalizeProposal(b, proposal.ID, 4601); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := ExecuteProposal(b, proposal.ID, 5000); err != nil {
		t.Fatalf("execute: %v", err)
	}
	refreshed, err := b.Proposal(proposal.ID)
	if err != nil {
		t.Fatalf("reload proposal: %v", err)
	}
	return refreshed
}

func TestDeposit(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	seedMember(t, b, community.ID, "alice", 100)

	if err := Deposit(b, community.ID, "alice", 0); err != ErrInvalidDepositAmount {
		t.Fatalf("zero amount: want ErrInvalidDepositAmount, got %v", err)
	}
	if err := Deposit(b, community.ID+1, "alice", 10); err != ErrNoSuchCommunity {
		t.Fatalf("missing community: want ErrNoSuchCommunity, got %v", err)
	}
	if err := Deposit(b, community.ID, "alice", 500); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("overdraw: want ErrInsufficientBalance, got %v", err)
	}

	for _, amount := range []uint64{40, 25} {
		if err := Deposit(b, community.ID, "alice", amount); err != nil {
			t.Fatalf("deposit %d: %v", amount, err)
		}
	}
	treasury, _ := b.BalanceOf(community.ID, community.Treasury())
	if treasury != 65 {
		t.Fatalf("treasury = %d, want 65", treasury)
	}
	remaining, _ := b.BalanceOf(community.ID, "alice")
	if remaining != 35 {
		t.Fatalf("alice = %d, want 35", remaining)
	}
}

func TestWithdrawAuthorizationChain(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	seedMember(t, b, community.ID, "alice", 200)
	if err := Deposit(b, community.ID, "alice", 100); err != nil {
		t.Fatalf("fund treasury: %v", err)
	}

	if err := Withdraw(b, 999, 10, "alice"); err != ErrNoSuchProposal {
		t.Fatalf("missing proposal: want ErrNoSuchProposal, got %v", err)
	}

	pending := seedProposal(t, b, community.ID, "alice", types.ProposalTransfer, 1000)
	if err := Withdraw(b, pending.ID, 10, "alice"); err != ErrWithdrawalRequiresProposal {
		t.Fatalf("active proposal: want ErrWithdrawalRequiresProposal, got %v", err)
	}

	proposal := executedTransferProposal(t, b, community.ID, "alice", "grant for the hackathon")
	if err := Withdraw(b, proposal.ID, 0, "alice"); err != ErrInvalidWithdrawalAmount {
		t.Fatalf("zero amount: want ErrInvalidWithdrawalAmount, got %v", err)
	}
	if err := Withdraw(b, proposal.ID, 500, "alice"); err != ErrInsufficientTreasuryBalance {
		t.Fatalf("overdraw: want ErrInsufficientTreasuryBalance, got %v", err)
	}

	if err := Withdraw(b, proposal.ID, 60, "alice"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	treasury, _ := b.BalanceOf(community.ID, community.Treasury())
	if treasury != 40 {
		t.Fatalf("treasury = %d, want 40", treasury)
	}
	balance, _ := b.BalanceOf(community.ID, "alice")
	if balance != 160 {
		t.Fatalf("alice = %d, want 160", balance)
	}

	// The proposal pays out once; the remaining 40 stays locked.
	if err := Withdraw(b, proposal.ID, 40, "alice"); err != ErrProposalAlreadyWithdrawn {
		t.Fatalf("second withdrawal: want ErrProposalAlreadyWithdrawn, got %v", err)
	}
	treasury, _ = b.BalanceOf(community.ID, community.Treasury())
	if treasury != 40 {
		t.Fatalf("treasury moved after rejected withdrawal: %d", treasury)
	}
}

func TestWithdrawRequiresTransferType(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	seedMember(t, b, community.ID, "alice", 100)
	if err := Deposit(b, community.ID, "alice", 50); err != nil {
		t.Fatalf("fund treasury: %v", err)
	}

	proposal, err := CreateProposal(b, CreateProposalInput{
		CommunityID:    community.ID,
		Proposer:       "alice",
		Title:          "adopt a code of conduct",
		Description:    "ratify the community guidelines",
		Type:           types.ProposalCustom,
		VotingDuration: 3600,
	}, 1000)
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	if _, err := CastVote(b, proposal.ID, "alice", types.VoteYes, 2000); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := FinalizeProposal(b, proposal.ID, 4601); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := ExecuteProposal(b, proposal.ID, 5000); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if err := Withdraw(b, proposal.ID, 10, "alice"); err != ErrInvalidInput {
		t.Fatalf("custom proposal: want ErrInvalidInput, got %v", err)
	}
}
