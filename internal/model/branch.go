package model

// Branch is the engineering branch a student is enrolled in.
type Branch string

const (
	BranchCSE   Branch = "CSE"
	BranchECE   Branch = "ECE"
	BranchEEE   Branch = "EEE"
	BranchMECH  Branch = "MECH"
	BranchCIVIL Branch = "CIVIL"
	BranchIT    Branch = "IT"
)

// AllBranches lists every recognized branch.
var AllBranches = []Branch{
	BranchCSE,
	BranchECE,
	BranchEEE,
	BranchMECH,
	BranchCIVIL,
	BranchIT,
}

// Valid reports whether b is one of AllBranches. Matching is exact.
func (b Branch) Valid() bool {
	for _, v := range AllBranches {
		if b == v {
			return true
		}
	}
	return false
}
