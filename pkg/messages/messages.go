package messages

// Replies sent privately to the user that pressed a component.
const (
	// ErrUserErrorProcessing is sent when something unexpected went wrong.
	ErrUserErrorProcessing = "There was an error processing your request. Please try again later."

	// PanelNotFound is sent when the panel behind a component no longer exists. (Cross)
	PanelNotFound = "❌ Panel configuration not found."

	// DuplicateOpenTicket is sent when the user already has an open ticket on the panel. (Cross)
	DuplicateOpenTicket = "❌ You already have an open ticket."

	// ChannelCreateFailed is sent when the ticket channel could not be created. The argument is the platform error.
	ChannelCreateFailed = "❌ Error creating channel: %s"

	// ClaimUnauthorized is sent when someone without a staff role tries to claim. (Cross)
	ClaimUnauthorized = "❌ Only assigned staff can claim tickets."

	// AlreadyClaimed is sent when the ticket has a claimant. The argument is the claimant's ID. (Cross)
	AlreadyClaimed = "❌ Already claimed by <@%s>"

	// CloseUnauthorized is sent when someone who is neither the creator nor staff tries to close. (Cross)
	CloseUnauthorized = "❌ You do not have permission to close this ticket."

	// AlreadyClosing is sent when the close button is pressed on a ticket that is already closing. (Stop sign)
	AlreadyClosing = "\U0001F6D1 This ticket is already closing."

	// CategorySet confirms the dropdown choice. The argument is the category label. (Check mark, pointing finger)
	CategorySet = "✅ Category set to **%s**.\n\U0001F449 Now click the **Create Ticket** button below to proceed."

	// TicketCreated confirms the ticket with a link to its channel. The argument is the channel ID. (Check mark)
	TicketCreated = "✅ **Ticket Created!** Access it here: <#%s>"

	// Closing acknowledges the close button. The argument is the delay in seconds. (Stop sign)
	Closing = "\U0001F6D1 **Closing ticket in %d seconds...**"
)

// Messages posted into ticket channels and direct messages.
const (
	// Claimed announces the claimant to the channel. The argument is the claimant's ID. (Check mark)
	Claimed = "✅ **Ticket successfully claimed by <@%s>**"

	// ClaimedTopic is the channel topic once claimed. The argument is the claimant's name.
	ClaimedTopic = "Ticket Claimed by: %s"

	// Welcome is the body of the welcome embed. The arguments are the requester mention and the category.
	// (Green circle)
	Welcome = "Hello %s,\n\nThanks for reaching out! Our staff team has been notified.\n\n**Category:** %s\n**Status:** \U0001F7E2 Open"

	// TicketClosed is the body of the direct message sent when a ticket closes. The argument is the guild name.
	TicketClosed = "Your ticket in **%s** has been closed."

	// Footer is the footer of every embed the bot sends.
	Footer = "Neutron Premium"
)
