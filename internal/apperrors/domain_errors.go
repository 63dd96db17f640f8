package apperrors

var (
	// Accounts
	ErrUserNotFound       = NotFound("user not found")
	ErrUsernameTaken      = AlreadyExists("username is already taken")
	ErrInvalidUsername    = InvalidArg("username must be 3-32 chars, lowercase letters, numbers and underscores only")
	ErrInvalidDisplayName = InvalidArg("display name cannot be empty")
	ErrInvalidPassword    = InvalidArg("password must be at least 8 characters")
	ErrInvalidCredentials = Unauthorized("invalid username or password")
	ErrMissingToken       = Unauthorized("authorization token missing")
	ErrInvalidToken       = Unauthorized("invalid or expired token")

	// Friendship
	ErrSelfRequest            = InvalidArg("you cannot send a friend request to yourself")
	ErrAlreadyFriends         = AlreadyExists("you are already friends with this user")
	ErrRequestAlreadySent     = AlreadyExists("you already sent this user a friend request")
	ErrRequestAlreadyReceived = AlreadyExists("this user already sent you a friend request; accept or decline it instead")
	ErrRequestPairPending     = AlreadyExists("a pending friend request already exists between you")
	ErrRequestNotFound        = NotFound("friend request not found or already processed")

	// Messaging
	ErrMissingParticipant = InvalidArg("sender and receiver are required")
	ErrEmptyContent       = InvalidArg("message content cannot be empty")
	ErrContentTooLong     = InvalidArg("message content exceeds the maximum length")
	ErrMissingImage       = InvalidArg("image message requires an image payload")
	ErrConflictingPayload = InvalidArg("a message cannot carry both text and image payloads")
	ErrUnknownKind        = InvalidArg("unknown message kind")
)

// ErrStore wraps an unexpected persistence failure without leaking the
// driver detail to callers.
func ErrStore(cause error) error {
	return Wrap(CodeInternal, "storage operation failed", cause)
}
