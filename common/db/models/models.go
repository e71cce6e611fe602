package models

// All lists every model for migrations
func All() []any {
	return []any{
		&User{},
		&Session{},
		&Event{},
		&Team{},
		&TeamMember{},
		&Registration{},
		&Submission{},
		&Vote{},
	}
}
