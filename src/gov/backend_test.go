package gov

import (
	"testing"

	"github.com/commune-labs/community-gov/src/api/types"
)

type memberKey struct {
	community uint64
	wallet    string
}

type voteKey struct {
	proposal uint64
	voter    string
}

type titleKey struct {
	community uint64
	title     string
}

type balanceKey struct {
	community uint64
	holder    string
}

// memBackend implements Backend over maps with copy-on-read records and
// clone-commit transactions, mirroring the rollback behavior of the SQL
// store: when the transaction callback fails, no mutation survives.
type memBackend struct {
	communities   map[uint64]types.Community
	members       map[memberKey]types.Member
	proposals     map[uint64]types.Proposal
	titles        map[titleKey]uint64
	votes         map[voteKey]types.Vote
	balances      map[balanceKey]uint64
	nextCommunity uint64
	nextProposal  uint64
}

func newMemBackend() *memBackend {
	return &memBackend{
		communities:   make(map[uint64]types.Community),
		members:       make(map[memberKey]types.Member),
		proposals:     make(map[uint64]types.Proposal),
		titles:        make(map[titleKey]uint64),
		votes:         make(map[voteKey]types.Vote),
		balances:      make(map[balanceKey]uint64),
		nextCommunity: 1,
		nextProposal:  1,
	}
}

func (m *memBackend) clone() *memBackend {
	c := newMemBackend()
	c.nextCommunity = m.nextCommunity
	c.nextProposal = m.nextProposal
	for k, v := range m.communities {
		c.communities[k] = v
	}
	for k, v := range m.members {
		c.members[k] = v
	}
	for k, v := range m.proposals {
		c.proposals[k] = v
	}
	for k, v := range m.titles {
		c.titles[k] = v
	}
	for k, v := range m.votes {
		c.votes[k] = v
	}
	for k, v := range m.balances {
		c.balances[k] = v
	}
	return c
}

func (m *memBackend) Transact(fn func(Backend) error) error {
	tx := m.clone()
	if err := fn(tx); err != nil {
		return err
	}
	*m = *tx
	return nil
}

func (m *memBackend) Community(id uint64) (*types.Community, error) {
	c, ok := m.communities[id]
	if !ok {
		return nil, ErrNoSuchCommunity
	}
	return &c, nil
}

func (m *memBackend) CreateCommunity(c *types.Community) error {
	for _, existing := range m.communities {
		if existing.Name == c.Name {
			return ErrCommunityAlreadyExists
		}
	}
	c.ID = m.nextCommunity
	m.nextCommunity++
	m.communities[c.ID] = *c
	return nil
}

func (m *memBackend) SaveCommunity(c *types.Community) error {
	m.communities[c.ID] = *c
	return nil
}

func (m *memBackend) Member(communityID uint64, wallet string) (*types.Member, error) {
	member, ok := m.members[memberKey{communityID, wallet}]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return &member, nil
}

func (m *memBackend) CreateMember(member *types.Member) error {
	key := memberKey{member.CommunityID, member.Wallet}
	if _, ok := m.members[key]; ok {
		return ErrMemberAlreadyRegistered
	}
	m.members[key] = *member
	return nil
}

func (m *memBackend) SaveMember(member *types.Member) error {
	m.members[memberKey{member.CommunityID, member.Wallet}] = *member
	return nil
}

func (m *memBackend) Proposal(id uint64) (*types.Proposal, error) {
	p, ok := m.proposals[id]
	if !ok {
		return nil, ErrNoSuchProposal
	}
	return &p, nil
}

func (m *memBackend) CreateProposal(p *types.Proposal) error {
	key := titleKey{p.CommunityID, p.Title}
	if _, ok := m.titles[key]; ok {
		return ErrProposalAlreadyExists
	}
	p.ID = m.nextProposal
	m.nextProposal++
	m.titles[key] = p.ID
	m.proposals[p.ID] = *p
	return nil
}

func (m *memBackend) SaveProposal(p *types.Proposal) error {
	m.proposals[p.ID] = *p
	return nil
}

func (m *memBackend) CreateVote(v *types.Vote) error {
	key := voteKey{v.ProposalID, v.Voter}
	if _, ok := m.votes[key]; ok {
		return ErrAlreadyVoted
	}
	m.votes[key] = *v
	return nil
}

func (m *memBackend) Votes(proposalID uint64) ([]types.Vote, error) {
	var out []types.Vote
	for k, v := range m.votes {
		if k.proposal == proposalID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memBackend) BalanceOf(communityID uint64, holder string) (uint64, error) {
	return m.balances[balanceKey{communityID, holder}], nil
}

func (m *memBackend) Transfer(communityID uint64, from, to string, amount uint64) error {
	fromKey := balanceKey{communityID, from}
	if m.balances[fromKey] < amount {
		return ErrInsufficientBalance
	}
	m.balances[fromKey] -= amount
	m.balances[balanceKey{communityID, to}] += amount
	return nil
}

func (m *memBackend) Mint(communityID uint64, to string, amount uint64) error {
	m.balances[balanceKey{communityID, to}] += amount
	return nil
}

func (m *memBackend) Burn(communityID uint64, from string, amount uint64) error {
	key := balanceKey{communityID, from}
	if m.balances[key] < amount {
		return ErrInsufficientBalance
	}
	m.balances[key] -= amount
	return nil
}

// ---------- seeding helpers ----------

func seedCommunity(t *testing.T, b *memBackend, threshold uint8, feeBps uint16) *types.Community {
	t.Helper()
	community, err := InitCommunity(b, InitCommunityInput{
		Admin:               "admin",
		Name:                "testers",
		TokenSymbol:         "TST",
		TokenDecimals:       6,
		GovernanceThreshold: threshold,
		TransferFeeBps:      feeBps,
	}, 1000)
	if err != nil {
		t.Fatalf("seed community: %v", err)
	}
	return community
}

func seedMember(t *testing.T, b *memBackend, communityID uint64, wallet string, balance uint64) {
	t.Helper()
	if _, err := RegisterMember(b, communityID, wallet, wallet, "", 1000); err != nil {
		t.Fatalf("seed member %s: %v", wallet, err)
	}
	if balance > 0 {
		if err := b.Mint(communityID, wallet, balance); err != nil {
			t.Fatalf("seed balance %s: %v", wallet, err)
		}
	}
}

func seedProposal(t *testing.T, b *memBackend, communityID uint64, proposer, proposalType string, now int64) *types.Proposal {
	t.Helper()
	proposal, err := CreateProposal(b, CreateProposalInput{
		CommunityID:    communityID,
		Proposer:       proposer,
		Title:          "fund the meetup",
		Description:    "pay for venue and snacks",
		Type:           proposalType,
		VotingDuration: 3600,
	}, now)
	if err != nil {
		t.Fatalf("seed proposal: %v", err)
	}
	return proposal
}
