package gov

import (
	"github.com/commune-labs/community-gov/src/api/types"
	"github.com/pkg/errors"
)

// InitCommunityInput carries the community bootstrap parameters. The caller
// becomes the first admin.
type InitCommunityInput struct {
	Admin               string
	Name                string
	TokenSymbol         string
	TokenDecimals       uint8
	GovernanceThreshold uint8
	TransferFeeBps      uint16
	InitialSupply       uint64 // minted to the treasury when non-zero
}

// InitCommunity creates a community config record and, when requested, seeds
// the treasury with an initial token supply. Created once per name; a repeat
// create fails with ErrCommunityAlreadyExists from the storage layer.
func InitCommunity(b Backend, in InitCommunityInput, now int64) (*types.Community, error) {
	if n := len(in.Name); n < 3 || n > 50 {
		return nil, ErrInvalidCommunityName
	}
	if n := len(in.TokenSymbol); n < 2 || n > 10 {
		return nil, ErrInvalidInput
	}
	if in.TokenDecimals > 9 {
		return nil, ErrInvalidDecimals
	}
	if in.GovernanceThreshold < 1 || in.GovernanceThreshold > 100 {
		return nil, ErrInvalidGovernanceThreshold
	}
	if in.TransferFeeBps > 1000 {
		return nil, ErrInvalidTransferFee
	}

	community := &types.Community{
		Name:                in.Name,
		Admin:               in.Admin,
		TokenSymbol:         in.TokenSymbol,
		TokenDecimals:       in.TokenDecimals,
		GovernanceThreshold: in.GovernanceThreshold,
		TransferFeeBps:      in.TransferFeeBps,
		CreatedAt:           now,
	}

	err := b.Transact(func(tx Backend) error {
		if err := tx.CreateCommunity(community); err != nil {
			return err
		}
		if in.InitialSupply > 0 {
			if err := tx.Mint(community.ID, community.Treasury(), in.InitialSupply); err != nil {
				return errors.Wrap(err, "mint initial supply")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

// ConfigUpdate lists the optional fields of a config change; nil fields are
// left untouched.
type ConfigUpdate struct {
	NewAdmin     *string
	NewThreshold *uint8
	NewFeeBps    *uint16
}

// UpdateConfig applies a partial config change. Only the current admin may
// call it; every present field is bounds-checked before anything is written.
func UpdateConfig(b Backend, communityID uint64, caller string, upd ConfigUpdate) (*types.Community, error) {
	community, err := b.Community(communityID)
	if err != nil {
		return nil, err
	}
	if community.Admin != caller {
		return nil, ErrUnauthorized
	}
	if upd.NewThreshold != nil && (*upd.NewThreshold < 1 || *upd.NewThreshold > 100) {
		return nil, ErrInvalidGovernanceThreshold
	}
	if upd.NewFeeBps != nil && *upd.NewFeeBps > 1000 {
		return nil, ErrInvalidTransferFee
	}

	if upd.NewAdmin != nil {
		community.Admin = *upd.NewAdmin
	}
	if upd.NewThreshold != nil {
		community.GovernanceThreshold = *upd.NewThreshold
	}
	if upd.NewFeeBps != nil {
		community.TransferFeeBps = *upd.NewFeeBps
	}

	err = b.Transact(func(tx Backend) error {
		return tx.SaveCommunity(community)
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

// RegisterMember adds a wallet to a community and bumps the member counter.
// Registration is idempotent-create: a second attempt fails with
// ErrMemberAlreadyRegistered and changes nothing.
func RegisterMember(b Backend, communityID uint64, wallet, name, metadataURI string, now int64) (*types.Member, error) {
	if n := len(name); n < 1 || n > 50 {
		return nil, ErrInvalidMemberName
	}
	if len(metadataURI) > 200 {
		return nil, ErrInvalidMetadataURI
	}
	community, err := b.Community(communityID)
	if err != nil {
		return nil, err
	}
	count, err := addU32(community.MemberCount, 1)
	if err != nil {
		return nil, err
	}

	member := &types.Member{
		CommunityID: communityID,
		Wallet:      wallet,
		Name:        name,
		MetadataURI: metadataURI,
		JoinedAt:    now,
	}

	err = b.Transact(func(tx Backend) error {
		if err := tx.CreateMember(member); err != nil {
			return err
		}
		community.MemberCount = count
		return tx.SaveCommunity(community)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateReputation adjusts a member's reputation score by delta. Admin only;
// the score moves through checked arithmetic in both directions.
func UpdateReputation(b Backend, communityID uint64, caller, wallet string, delta int64, reason string) (*types.Member, error) {
	if n := len(reason); n < 5 || n > 200 {
		return nil, ErrReputationReason
	}
	community, err := b.Community(communityID)
	if err != nil {
		return nil, err
	}
	if community.Admin != caller {
		return nil, ErrUnauthorized
	}
	member, err := b.Member(communityID, wallet)
	if err != nil {
		return nil, err
	}

	score, err := addI64(member.ReputationScore, delta)
	if err != nil {
		if delta < 0 {
			return nil, ErrArithmeticUnderflow
		}
		return nil, err
	}
	member.ReputationScore = score

	err = b.Transact(func(tx Backend) error {
		return tx.SaveMember(member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}
