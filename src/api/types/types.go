package types

import "fmt"

// Proposal types
const (
	ProposalTransfer     = "transfer"      // treasury fund movement
	ProposalConfigChange = "config_change" // community config update
	ProposalMemberAction = "member_action" // add/remove member
	ProposalCustom       = "custom"        // opaque execution payload
)

// Proposal statuses
const (
	StatusActive    = "active"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusExecuted  = "executed"
	StatusCancelled = "cancelled"
)

// Vote choices
const (
	VoteYes     = "yes"
	VoteNo      = "no"
	VoteAbstain = "abstain"
)

// Communities
type Community struct {
	ID                  uint64 `gorm:"primaryKey"`
	Name                string `gorm:"size:50;unique;not null"`
	Admin               string `gorm:"size:128;not null"`
	TokenSymbol         string `gorm:"size:10;not null"`
	TokenDecimals       uint8  `gorm:"not null"`
	GovernanceThreshold uint8  `gorm:"not null"` // percent of yes+no votes, 1-100
	TransferFeeBps      uint16 `gorm:"default:0"`
	MemberCount         uint32 `gorm:"default:0"`
	CreatedAt           int64  `gorm:"not null"`
}

// Treasury returns the derived ledger identity that holds the community fund.
func (c Community) Treasury() string {
	return TreasuryAddress(c.ID)
}

func TreasuryAddress(communityID uint64) string {
	return fmt.Sprintf("treasury:%d", communityID)
}

// Community members
type Member struct {
	CommunityID       uint64 `gorm:"primaryKey;autoIncrement:false"`
	Wallet            string `gorm:"primaryKey;size:128"`
	Name              string `gorm:"size:50;not null"`
	MetadataURI       string `gorm:"size:200"`
	ReputationScore   int64  `gorm:"default:0"`
	TotalTransactions uint32 `gorm:"default:0"`
	JoinedAt          int64  `gorm:"not null"`
}

// Governance proposals. Unique per (community, title) so a repeated create is
// rejected at the storage layer instead of silently overwriting.
type Proposal struct {
	ID            uint64 `gorm:"primaryKey"`
	CommunityID   uint64 `gorm:"uniqueIndex:uniq_community_title;not null"`
	Proposer      string `gorm:"size:128;not null"`
	Title         string `gorm:"uniqueIndex:uniq_community_title;size:100;not null"`
	Description   string `gorm:"size:500;not null"`
	Type          string `gorm:"size:16;not null"`
	ExecutionData []byte `gorm:"size:1024"`
	Status        string `gorm:"size:16;not null"`
	YesVotes      uint64 `gorm:"default:0"`
	NoVotes       uint64 `gorm:"default:0"`
	AbstainVotes  uint64 `gorm:"default:0"`
	TotalVoters   uint32 `gorm:"default:0"`
	VotingEndsAt  int64  `gorm:"not null"`
	CreatedAt     int64  `gorm:"not null"`
	ExecutedAt    *int64
	Withdrawn     bool `gorm:"default:false"` // a transfer proposal pays out at most once
}

// Votes, one per (proposal, voter). The composite primary key is the
// duplicate-vote guard; votes are immutable once created.
type Vote struct {
	ProposalID  uint64 `gorm:"primaryKey;autoIncrement:false"`
	Voter       string `gorm:"primaryKey;size:128"`
	Type        string `gorm:"size:8;not null"`
	VotingPower uint64 `gorm:"not null"` // token balance snapshot at cast time
	VotedAt     int64  `gorm:"not null"`
}

// Token ledger balances, one row per (community, holder). The treasury is an
// ordinary holder with a derived address.
type Balance struct {
	CommunityID uint64 `gorm:"primaryKey;autoIncrement:false"`
	Holder      string `gorm:"primaryKey;size:128"`
	Amount      uint64 `gorm:"not null;default:0"`
}
