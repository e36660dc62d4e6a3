package models

// Group is a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Title is the display name of the group (e.g., "Roommates", "Đà Lạt trip").
	// It is also used in settlement notes.
	Title string

	// Members is the membership list of the group.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is one participant of a group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	// Splits and balances refer to members by this ID.
	ID string

	// GroupID is the group this member belongs to.
	GroupID string

	// DisplayName is the human-readable name shown in statements.
	DisplayName string

	// UserID optionally links the member to an authenticated account.
	// Empty when the member has not joined with an account yet.
	UserID string
}

// Member returns the member with the given ID.
func (g *Group) Member(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// MemberByUser returns the member linked to the given account.
func (g *Group) MemberByUser(userID string) (Member, bool) {
	if userID == "" {
		return Member{}, false
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// DisplayNames maps member IDs to display names.
func (g *Group) DisplayNames() map[string]string {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.ID] = m.DisplayName
	}
	return names
}
