package tickets

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/neutron/pkg/messages"
)

var (
	// ErrConfigNotFound is returned when the panel a ticket is opened from does not exist.
	ErrConfigNotFound = errors.New("panel configuration not found")

	// ErrDuplicateOpenTicket is returned when the user already has an open ticket for the panel.
	ErrDuplicateOpenTicket = errors.New("user already has an open ticket")

	// ErrChannelCreateFailed is matched by a *ChannelCreateError.
	ErrChannelCreateFailed = errors.New("error creating ticket channel")

	// ErrUnauthorized is returned when the actor may not perform the operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyClaimed is matched by an *AlreadyClaimedError.
	ErrAlreadyClaimed = errors.New("ticket already claimed")

	// ErrTicketNotFound is returned when no open ticket is backed by the channel.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrAlreadyClosing is returned when a close is already waiting out its delay.
	ErrAlreadyClosing = errors.New("ticket already closing")

	errClaimUnauthorized = fmt.Errorf("%w: only staff can claim tickets", ErrUnauthorized)
	errCloseUnauthorized = fmt.Errorf("%w: only the creator or staff can close tickets", ErrUnauthorized)
)

// AlreadyClaimedError is returned when a ticket already has a claimant.
type AlreadyClaimedError struct {
	// ClaimantID is the ID of the staff member that holds the claim.
	ClaimantID string
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("ticket already claimed by %s", e.ClaimantID)
}

func (e *AlreadyClaimedError) Is(target error) bool {
	return target == ErrAlreadyClaimed
}

// ChannelCreateError is returned when the platform refused to create the ticket channel.
type ChannelCreateError struct {
	Err error
}

func (e *ChannelCreateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrChannelCreateFailed, e.Err)
}

func (e *ChannelCreateError) Unwrap() error {
	return e.Err
}

func (e *ChannelCreateError) Is(target error) bool {
	return target == ErrChannelCreateFailed
}

// UserMessage returns the short text shown privately to the user for an error.
func UserMessage(err error) string {
	var (
		claimed *AlreadyClaimedError
		create  *ChannelCreateError
	)

	switch {
	case errors.Is(err, ErrConfigNotFound):
		return messages.PanelNotFound
	case errors.Is(err, ErrDuplicateOpenTicket):
		return messages.DuplicateOpenTicket
	case errors.As(err, &create):
		return fmt.Sprintf(messages.ChannelCreateFailed, create.Err)
	case errors.Is(err, errClaimUnauthorized):
		return messages.ClaimUnauthorized
	case errors.Is(err, errCloseUnauthorized):
		return messages.CloseUnauthorized
	case errors.As(err, &claimed):
		return fmt.Sprintf(messages.AlreadyClaimed, claimed.ClaimantID)
	case errors.Is(err, ErrAlreadyClosing):
		return messages.AlreadyClosing
	default:
		return messages.ErrUserErrorProcessing
	}
}
