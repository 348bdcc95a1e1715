package lore

import "time"

// SeedCharacters returns the fixed sample dataset used when no stored
// character collection exists or the stored document fails to parse.
func SeedCharacters() []Character {
	now := time.Now().UnixMilli()
	return []Character{
		{
			ID:             CoreCharacterID,
			Name:           "ELARA VANCE",
			Role:           RoleProtagonist,
			Worldview:      WorldviewHighFantasy,
			Race:           "High Elf",
			CharacterClass: "Mage",
			Faction:        "Silver Covenant",
			Description:    "The Anchor Point. Cannot be erased from history. Retains memories across all timeline resets.",
			Appearance:     "Tall, silver hair, glowing green eyes. Wears crimson robes tattered at the edges.",
			ImageURL:       "https://picsum.photos/400/400?random=1",
			Tags:           []string{"Core Entity", "Time Traveler", "Cursed"},
			Relationships:  []Relationship{{TargetID: "char_002", Type: "Enemy", Intensity: 90}},
			LastUpdated:    now,
		},
		{
			ID:             "char_002",
			Name:           "Unit 734",
			Role:           RoleAntagonist,
			Worldview:      WorldviewModernCyber,
			Race:           "Android",
			CharacterClass: "Cyber-Security Enforcer",
			Faction:        "Iron Horde Corp",
			Description:    "A brutal enforcement unit who believes algorithmic order is the only virtue.",
			Appearance:     "Massive build, chrome plating, exposed wiring on jawline.",
			ImageURL:       "https://picsum.photos/400/400?random=2",
			Tags:           []string{"Warrior", "Leader", "Synthetic"},
			Relationships:  []Relationship{{TargetID: CoreCharacterID, Type: "Target", Intensity: 85}},
			LastUpdated:    now,
		},
	}
}

// SeedLocations returns the fixed sample dataset used when no stored
// location collection exists or the stored document fails to parse.
func SeedLocations() []Location {
	return []Location{
		{
			ID:          "loc_001",
			Name:        "Neo-Kowloon",
			Type:        "Megacity",
			Worldview:   WorldviewModernCyber,
			Coordinates: "34.22, 119.01",
			Population:  "12,000,000",
			Description: "A vertical sprawl of neon and rain. The lower levels haven't seen the sun in decades.",
			History:     "Founded after the Great Flood of 2099. Originally a refugee camp, now the trade capital of the East Sector.",
			Culture:     "High-tech low-life. Cybernetic augmentation is standard. Triad gangs control the food supply.",
			ImageURL:    "https://picsum.photos/600/400?random=10",
			Residents:   []string{"char_002"},
		},
		{
			ID:          "loc_002",
			Name:        "The Whispering Woods",
			Type:        "Forbidden Forest",
			Worldview:   WorldviewHighFantasy,
			Coordinates: "Unknown",
			Population:  "Sparse / Unknown",
			Description: "Ancient trees that remember the old gods. Magic runs wild here.",
			History:     "The site of the First War between Elves and Demons. The soil is still stained with mana.",
			Culture:     "Druidic circles protect the borders. Trespassers are rarely seen again.",
			ImageURL:    "https://picsum.photos/600/400?random=11",
			Residents:   []string{CoreCharacterID},
		},
	}
}
