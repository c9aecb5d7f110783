package gov

import (
	"testing"

	"github.com/commune-labs/community-gov/src/api/types"
)

func TestCastVoteGuards(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	seedMember(t, b, community.ID, "alice", 30)
	seedMember(t, b, community.ID, "broke", 0)
	proposal := seedProposal(t, b, community.ID, "alice", types.ProposalCustom, 1000)

	if _, err := CastVote(b, proposal.ID, "alice", "maybe", 2000); err != ErrInvalidInput {
		t.Fatalf("bad choice: want ErrInvalidInput, got %v", err)
	}
	if _, err := CastVote(b, proposal.ID+100, "alice", types.VoteYes, 2000); err != ErrNoSuchProposal {
		t.Fatalf("missing proposal: want ErrNoSuchProposal, got %v", err)
	}
	if _, err := CastVote(b, proposal.ID, "stranger", types.VoteYes, 2000); err != ErrMemberNotFound {
		t.Fatalf("non-member: want ErrMemberNotFound, got %v", err)
	}
	if _, err := CastVote(b, proposal.ID, "broke", types.VoteYes, 2000); err != ErrInsufficientTokens {
		t.Fatalf("zero balance: want ErrInsufficientTokens, got %v", err)
	}
	if _, err := CastVote(b, proposal.ID, "alice", types.VoteYes, 4601); err != ErrVotingPeriodEnded {
		t.Fatalf("after window: want ErrVotingPeriodEnded, got %v", err)
	}

	// The window edge itself is still votable.
	if _, err := CastVote(b, proposal.ID, "alice", types.VoteYes, 4600); err != nil {
		t.Fatalf("vote at edge: %v", err)
	}

	if _, err := CancelProposal(b, proposal.ID, "alice"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	seedMember(t, b, community.ID, "bob", 10)
	if _, err := CastVote(b, proposal.ID, "bob", types.VoteYes, 3000); err != ErrProposalNotActive {
		t.Fatalf("cancelled proposal: want ErrProposalNotActive, got %v", err)
	}
}

func TestCastVoteDuplicateLeavesTallyUnchanged(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	seedMember(t, b, community.ID, "alice", 30)
	proposal := seedProposal(t, b, community.ID, "alice", types.ProposalCustom, 1000)

	if _, err := CastVote(b, proposal.ID, "alice", types.VoteYes, 2000); err != nil {
		t.Fatalf("first vote: %v", err)
	}

	// Pump the balance and try to re-snapshot with a different choice.
	if err := b.Mint(community.ID, "alice", 1000); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := CastVote(b, proposal.ID, "alice", types.VoteNo, 2500); err != ErrAlreadyVoted {
		t.Fatalf("want ErrAlreadyVoted, got %v", err)
	}

	refreshed, _ := b.Proposal(proposal.ID)
	if refreshed.YesVotes != 30 || refreshed.NoVotes != 0 || refreshed.TotalVoters != 1 {
		t.Fatalf("tally changed after rejected duplicate: %+v", refreshed)
	}
}

func TestCastVoteSnapshotsPower(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	seedMember(t, b, community.ID, "alice", 30)
	proposal := seedProposal(t, b, community.ID, "alice", types.ProposalCustom, 1000)

	vote, err := CastVote(b, proposal.ID, "alice", types.VoteYes, 2000)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if vote.VotingPower != 30 {
		t.Fatalf("power = %d, want 30", vote.VotingPower)
	}

	// Later balance changes never touch the recorded tally.
	if err := b.Burn(community.ID, "alice", 30); err != nil {
		t.Fatalf("burn: %v", err)
	}
	refreshed, _ := b.Proposal(proposal.ID)
	if refreshed.YesVotes != 30 {
		t.Fatalf("yes = %d, want 30", refreshed.YesVotes)
	}
}

// After N accepted votes the three accumulators partition the N snapshot
// powers by choice, and TotalVoters equals N.
func TestCastVoteTallyPartition(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	voters := []struct {
		wallet string
		power  uint64
		choice string
	}{
		{"v1", 11, types.VoteYes},
		{"v2", 7, types.VoteNo},
		{"v3", 5, types.VoteAbstain},
		{"v4", 13, types.VoteYes},
		{"v5", 3, types.VoteNo},
	}
	for _, v := range voters {
		seedMember(t, b, community.ID, v.wallet, v.power)
	}
	proposal := seedProposal(t, b, community.ID, "v1", types.ProposalCustom, 1000)

	var wantYes, wantNo, wantAbstain uint64
	for _, v := range voters {
		if _, err := CastVote(b, proposal.ID, v.wallet, v.choice, 2000); err != nil {
			t.Fatalf("vote %s: %v", v.wallet, err)
		}
		switch v.choice {
		case types.VoteYes:
			wantYes += v.power
		case types.VoteNo:
			wantNo += v.power
		case types.VoteAbstain:
			wantAbstain += v.power
		}
	}

	refreshed, _ := b.Proposal(proposal.ID)
	if refreshed.YesVotes != wantYes || refreshed.NoVotes != wantNo || refreshed.AbstainVotes != wantAbstain {
		t.Fatalf("tally %d/%d/%d, want %d/%d/%d", refreshed.YesVotes, refreshed.NoVotes,
			refreshed.AbstainVotes, wantYes, wantNo, wantAbstain)
	}
	if refreshed.TotalVoters != uint32(len(voters)) {
		t.Fatalf("total voters = %d, want %d", refreshed.TotalVoters, len(voters))
	}
}

func TestCastVoteAccumulatorOverflow(t *testing.T) {
	b := newMemBackend()
	community := seedCommunity(t, b, 50, 0)
	seedMember(t, b, community.ID, "whale1", 1<<63)
	seedMember(t, b, community.ID, "whale2", 1<<63)
	proposal := seedProposal(t, b, community.ID, "whale1", types.ProposalCustom, 1000)

	if _, err := CastVote(b, proposal.ID, "whale1", types.VoteYes, 2000); err != nil {
		t.Fatalf("first whale: %v", err)
	}
	if _, err := CastVote(b, proposal.ID, "whale2", types.VoteYes, 2000); err != ErrArithmeticOverflow {
		t.Fatalf("want ErrArithmeticOverflow, got %v", err)
	}

	refreshed, _ := b.Proposal(proposal.ID)
	if refreshed.YesVotes != 1<<63 || refreshed.TotalVoters != 1 {
		t.Fatalf("failed vote must leave tally intact: %+v", refreshed)
	}
}
