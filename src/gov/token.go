package gov

import (
	"github.com/pkg/errors"
)

const bpsDenominator = 10000

// FeeSplit computes the fee routed to the treasury for a transfer of amount
// at feeBps, and the net amount the recipient receives. net+fee == amount for
// every valid input; feeBps <= 1000 keeps fee strictly below amount, but the
// subtraction is still checked.
func FeeSplit(amount uint64, feeBps uint16) (net, fee uint64, err error) {
	fee, err = mulDiv(amount, uint64(feeBps), bpsDenominator)
	if err != nil {
		return 0, 0, err
	}
	net, err = subU64(amount, fee)
	if err != nil {
		return 0, 0, err
	}
	return net, fee, nil
}

// TransferTokens moves tokens between two members, routing the community's
// transfer fee to the treasury. The net and fee transfers commit together or
// not at all. Returns the fee charged.
func TransferTokens(b Backend, communityID uint64, sender, recipient string, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, ErrInvalidTokenAmount
	}
	community, err := b.Community(communityID)
	if err != nil {
		return 0, err
	}
	senderMember, err := b.Member(communityID, sender)
	if err != nil {
		return 0, err
	}
	recipientMember, err := b.Member(communityID, recipient)
	if err != nil {
		return 0, err
	}

	net, fee, err := FeeSplit(amount, community.TransferFeeBps)
	if err != nil {
		return 0, err
	}
	senderTxns, err := addU32(senderMember.TotalTransactions, 1)
	if err != nil {
		return 0, err
	}
	recipientTxns, err := addU32(recipientMember.TotalTransactions, 1)
	if err != nil {
		return 0, err
	}

	err = b.Transact(func(tx Backend) error {
		if err := tx.Transfer(communityID, sender, recipient, net); err != nil {
			return errors.Wrap(err, "net transfer")
		}
		if fee > 0 {
			if err := tx.Transfer(communityID, sender, community.Treasury(), fee); err != nil {
				return errors.Wrap(err, "fee transfer")
			}
		}
		senderMember.TotalTransactions = senderTxns
		if err := tx.SaveMember(senderMember); err != nil {
			return err
		}
		recipientMember.TotalTransactions = recipientTxns
		return tx.SaveMember(recipientMember)
	})
	if err != nil {
		return 0, err
	}
	return fee, nil
}

// MintTokens creates new supply for a holder. Admin only.
func MintTokens(b Backend, communityID uint64, caller, to string, amount uint64) error {
	if amount == 0 {
		return ErrInvalidTokenAmount
	}
	community, err := b.Community(communityID)
	if err != nil {
		return err
	}
	if community.Admin != caller {
		return ErrUnauthorized
	}
	return b.Transact(func(tx Backend) error {
		return errors.Wrap(tx.Mint(communityID, to, amount), "mint")
	})
}

// BurnTokens destroys part of the caller's own balance.
func BurnTokens(b Backend, communityID uint64, caller string, amount uint64) error {
	if amount == 0 {
		return ErrInvalidTokenAmount
	}
	if _, err := b.Community(communityID); err != nil {
		return err
	}
	return b.Transact(func(tx Backend) error {
		return errors.Wrap(tx.Burn(communityID, caller, amount), "burn")
	})
}
