package quotes

import (
	"fmt"

	"github.com/printyke/printy-backend/pkg/enums"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
)

// actorRole identifies who may trigger a transition.
type actorRole int

const (
	roleCreator actorRole = iota
	roleShopOwner
)

type transition struct {
	from enums.QuoteStatus
	to   enums.QuoteStatus
}

// The quote workflow: buyers draft and submit, sellers price and send,
// buyers accept or reject. Anything else is a state conflict.
var legalTransitions = map[transition]actorRole{
	{enums.QuoteStatusDraft, enums.QuoteStatusSubmitted}:  roleCreator,
	{enums.QuoteStatusSubmitted, enums.QuoteStatusPriced}: roleShopOwner,
	{enums.QuoteStatusPriced, enums.QuoteStatusSent}:      roleShopOwner,
	{enums.QuoteStatusSent, enums.QuoteStatusAccepted}:    roleCreator,
	{enums.QuoteStatusSent, enums.QuoteStatusRejected}:    roleCreator,
}

// ValidateTransition rejects illegal status changes with a state-conflict
// error and wrong-actor attempts with a forbidden error. isCreator and
// isShopOwner describe the caller's relationship to the quote.
func ValidateTransition(from, to enums.QuoteStatus, isCreator, isShopOwner bool) error {
	role, ok := legalTransitions[transition{from, to}]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move quote from %s to %s", from, to))
	}
	switch role {
	case roleCreator:
		if !isCreator {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the quote creator may perform this action")
		}
	case roleShopOwner:
		if !isShopOwner {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the shop owner may perform this action")
		}
	}
	return nil
}
