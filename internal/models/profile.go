// internal/models/profile.go
package models

// Profile is the subset of a user profile the planner reads.
type Profile struct {
	ID        string   `json:"id"`
	Location  string   `json:"location,omitempty"`
	Interests []string `json:"interests"`
	School    string   `json:"school,omitempty"`
	SchoolID  string   `json:"schoolId,omitempty"`
	FullName  string   `json:"fullName,omitempty"`
}

// FirstName returns the first word of FullName.
func (p *Profile) FirstName() string {
	for i, r := range p.FullName {
		if r == ' ' {
			return p.FullName[:i]
		}
	}
	return p.FullName
}
