package domain

// Authorization policy. Pure functions of the caller identity and the
// ownership facts already loaded for the request; no I/O.

// CanCreateEvent reports whether the caller may create events for the club:
// an administrator, a club admin who is the club's president, or a listed
// club member. In every case the club must belong to the caller's organization.
func CanCreateEvent(caller *Identity, club *Club) bool {
	if club.OrganizationID != caller.OrganizationID {
		return false
	}
	if caller.IsAdmin() {
		return true
	}
	if caller.Role == RoleClubAdmin && club.PresidentID == caller.UserID {
		return true
	}
	return club.HasMember(caller.UserID)
}

// CanManageEvent reports whether the caller may update an event or manage its
// attendees: an administrator or the owning club's president.
func CanManageEvent(caller *Identity, club *Club) bool {
	return caller.IsAdmin() || club.PresidentID == caller.UserID
}

// CanDeleteEvent reports whether the caller may delete the event: anyone who
// can manage it, or a listed event organizer.
func CanDeleteEvent(caller *Identity, club *Club, event *Event) bool {
	if CanManageEvent(caller, club) {
		return true
	}
	for _, o := range event.Organizers {
		if o == caller.UserID {
			return true
		}
	}
	return false
}
