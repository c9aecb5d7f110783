package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/commune-labs/community-gov/src/gov"
	"github.com/commune-labs/community-gov/src/logging"
)

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// httpStatus maps the core's error taxonomy onto response codes: validation
// 400, authorization 403, missing records 404, state-machine guards and
// duplicate creates 409, balance/arithmetic failures 422, the rest 500.
func httpStatus(err error) int {
	switch {
	case isAny(err, gov.ErrUnauthorized):
		return http.StatusForbidden
	case isAny(err, gov.ErrNoSuchCommunity, gov.ErrNoSuchProposal, gov.ErrMemberNotFound):
		return http.StatusNotFound
	case isAny(err,
		gov.ErrProposalNotActive, gov.ErrProposalNotApproved,
		gov.ErrProposalAlreadyExecuted, gov.ErrCannotCancelExecuted,
		gov.ErrVotingPeriodEnded, gov.ErrVotingPeriodNotEnded,
		gov.ErrAlreadyVoted, gov.ErrWithdrawalRequiresProposal,
		gov.ErrProposalAlreadyWithdrawn, gov.ErrCommunityAlreadyExists,
		gov.ErrProposalAlreadyExists, gov.ErrMemberAlreadyRegistered):
		return http.StatusConflict
	case isAny(err,
		gov.ErrInsufficientTokens, gov.ErrInsufficientBalance,
		gov.ErrInsufficientTreasuryBalance,
		gov.ErrArithmeticOverflow, gov.ErrArithmeticUnderflow):
		return http.StatusUnprocessableEntity
	case isAny(err,
		gov.ErrInvalidCommunityName, gov.ErrInvalidGovernanceThreshold,
		gov.ErrInvalidTransferFee, gov.ErrInvalidDecimals,
		gov.ErrInvalidMemberName, gov.ErrInvalidMetadataURI,
		gov.ErrReputationReason, gov.ErrInvalidProposalTitle,
		gov.ErrInvalidProposalDescription, gov.ErrInvalidVotingPeriod,
		gov.ErrInvalidTokenAmount, gov.ErrInvalidWithdrawalAmount,
		gov.ErrInvalidDepositAmount, gov.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		logging.ErrorWithStack(err)
	}
	c.JSON(code, gin.H{"err": err.Error()})
}
