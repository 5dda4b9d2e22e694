package algorithms

// ConversationSeparator joins the sorted user id pair. User ids are uuid
// strings (hex digits and hyphens), so ':' can never appear inside an id and
// the derived key cannot collide across distinct pairs.
const ConversationSeparator = ":"

// ConversationID derives the canonical conversation key for a pair of user
// ids. The pair is sorted lexicographically before joining, so
// ConversationID(a, b) == ConversationID(b, a) for all a, b.
func ConversationID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + ConversationSeparator + userB
}
