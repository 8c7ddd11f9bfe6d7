package models

// GuestStatus tracks a guest from invite to RSVP.
type GuestStatus string

const (
	GuestStatusPending   GuestStatus = "pending"
	GuestStatusSent      GuestStatus = "sent"
	GuestStatusOpened    GuestStatus = "opened"
	GuestStatusConfirmed GuestStatus = "confirmed"
	GuestStatusDeclined  GuestStatus = "declined"
)

// IsValid reports whether s is one of the known statuses.
func (s GuestStatus) IsValid() bool {
	switch s {
	case GuestStatusPending, GuestStatusSent, GuestStatusOpened, GuestStatusConfirmed, GuestStatusDeclined:
		return true
	}
	return false
}

// Guest is an invited person. It always belongs to one invitation.
type Guest struct {
	BaseModel
	InvitationID string      `gorm:"type:varchar(36);not null;index" json:"invitation_id"`
	Name         string      `gorm:"type:varchar(150);not null" json:"name"`
	Phone        string      `gorm:"type:varchar(30)" json:"phone"`
	Status       GuestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
}
