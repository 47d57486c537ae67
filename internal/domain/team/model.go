package team

import "fmt"

// Team is a football club discovered on the league standings page.
// ExternalID is the identifier the source site embeds in the squad URL.
type Team struct {
	ID         int64
	ExternalID string
	Name       string
	URL        string
}

func (t Team) Validate() error {
	if t.ExternalID == "" {
		return fmt.Errorf("team external id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Descriptor is a team as parsed from the league directory page, before
// it has been persisted.
type Descriptor struct {
	Name        string
	RelativeURL string
	ExternalID  string
}
