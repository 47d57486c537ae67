package player

import "fmt"

// Player belongs to exactly one team. The source site does not expose a
// stable player identifier inside stat tables, so identity is resolved by
// (trimmed name, team id) and ExternalID is synthesized when unknown.
type Player struct {
	ID          int64
	ExternalID  string
	Name        string
	Position    string
	Nationality string
	TeamID      int64
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id is required")
	}

	return nil
}
