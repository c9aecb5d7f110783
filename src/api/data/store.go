package data

import (
	"math/bits"

	"github.com/commune-labs/community-gov/src/api/types"
	"github.com/commune-labs/community-gov/src/gov"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store implements gov.Backend on GORM/MySQL. Duplicate-key and not-found
// errors are translated to the core's sentinels so the state-machine guards
// stay storage-agnostic. Requires gorm.Config{TranslateError: true}.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transact(fn func(gov.Backend) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err, dup, missing error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return dup
	case errors.Is(err, gorm.ErrRecordNotFound):
		return missing
	}
	return err
}

func (s *Store) Community(id uint64) (*types.Community, error) {
	var community types.Community
	err := s.db.First(&community, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, nil, gov.ErrNoSuchCommunity)
	}
	return &community, nil
}

func (s *Store) CreateCommunity(c *types.Community) error {
	return translate(s.db.Create(c).Error, gov.ErrCommunityAlreadyExists, nil)
}

func (s *Store) SaveCommunity(c *types.Community) error {
	return s.db.Save(c).Error
}

func (s *Store) Member(communityID uint64, wallet string) (*types.Member, error) {
	var member types.Member
	err := s.db.First(&member, "community_id = ? AND wallet = ?", communityID, wallet).Error
	if err != nil {
		return nil, translate(err, nil, gov.ErrMemberNotFound)
	}
	return &member, nil
}

func (s *Store) CreateMember(m *types.Member) error {
	return translate(s.db.Create(m).Error, gov.ErrMemberAlreadyRegistered, nil)
}

func (s *Store) SaveMember(m *types.Member) error {
	return s.db.Save(m).Error
}

func (s *Store) Proposal(id uint64) (*types.Proposal, error) {
	var proposal types.Proposal
	err := s.db.First(&proposal, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, nil, gov.ErrNoSuchProposal)
	}
	return &proposal, nil
}

func (s *Store) CreateProposal(p *types.Proposal) error {
	return translate(s.db.Create(p).Error, gov.ErrProposalAlreadyExists, nil)
}

func (s *Store) SaveProposal(p *types.Proposal) error {
	return s.db.Save(p).Error
}

func (s *Store) CreateVote(v *types.Vote) error {
	return translate(s.db.Create(v).Error, gov.ErrAlreadyVoted, nil)
}

func (s *Store) Votes(proposalID uint64) ([]types.Vote, error) {
	var votes []types.Vote
	err := s.db.Where("proposal_id = ?", proposalID).Order("voted_at asc").Find(&votes).Error
	return votes, err
}

// ---------- token ledger ----------

func (s *Store) BalanceOf(communityID uint64, holder string) (uint64, error) {
	var balance types.Balance
	err := s.db.First(&balance, "community_id = ? AND holder = ?", communityID, holder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

func (s *Store) Transfer(communityID uint64, from, to string, amount uint64) error {
	if err := s.debit(communityID, from, amount); err != nil {
		return err
	}
	return s.credit(communityID, to, amount)
}

func (s *Store) Mint(communityID uint64, to string, amount uint64) error {
	return s.credit(communityID, to, amount)
}

func (s *Store) Burn(communityID uint64, from string, amount uint64) error {
	return s.debit(communityID, from, amount)
}

func (s *Store) debit(communityID uint64, holder string, amount uint64) error {
	var balance types.Balance
	err := s.db.First(&balance, "community_id = ? AND holder = ?", communityID, holder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && balance.Amount < amount) {
		return gov.ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	balance.Amount -= amount
	return s.db.Save(&balance).Error
}

func (s *Store) credit(communityID uint64, holder string, amount uint64) error {
	var balance types.Balance
	err := s.db.Where(types.Balance{CommunityID: communityID, Holder: holder}).
		FirstOrCreate(&balance).Error
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(balance.Amount, amount, 0)
	if carry != 0 {
		return gov.ErrArithmeticOverflow
	}
	balance.Amount = sum
	return s.db.Save(&balance).Error
}
