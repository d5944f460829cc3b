package domain

// Owned is implemented by any resource that carries a membership or
// ownership link set. The authorization policy grants access when the
// principal's user ID appears in MemberIDs (admins bypass the check).
type Owned interface {
	MemberIDs() []string
}
