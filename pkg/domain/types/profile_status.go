package types

// ProfileStatus represents the lifecycle state of a user profile.
// Profiles created lazily on the first preference write are provisional
// (anonymous identity with a synthetic email); they become confirmed when
// the user registers a real address.
type ProfileStatus string

const (
	ProfileProvisional ProfileStatus = "provisional"
	ProfileConfirmed   ProfileStatus = "confirmed"
)

// IsValid checks if the profile status is valid
func (s ProfileStatus) IsValid() bool {
	switch s {
	case ProfileProvisional, ProfileConfirmed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as provisional for records
// written before the status field existed.
func (s ProfileStatus) Normalize() ProfileStatus {
	if s == "" {
		return ProfileProvisional
	}
	return s
}

// String returns the string representation of the profile status
func (s ProfileStatus) String() string {
	return string(s)
}
