package models

import "gorm.io/datatypes"

// Invitation is the full settings record of one couple's digital invitation.
// There is at most one per user. EventDate/EventTime/EventLocation mirror
// the akad schedule for older templates.
type Invitation struct {
	BaseModel
	UserID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`

	EventName      string `gorm:"type:varchar(255)" json:"event_name"`
	ThemeID        string `gorm:"type:varchar(36);index" json:"theme_id"`
	OpeningQuote   string `gorm:"type:text" json:"opening_quote"`
	ClosingMessage string `gorm:"type:text" json:"closing_message"`
	MusicURL       string `gorm:"type:varchar(500)" json:"music_url"`

	GroomName        string `gorm:"type:varchar(100)" json:"groom_name"`
	GroomFullName    string `gorm:"type:varchar(200)" json:"groom_full_name"`
	GroomTitle       string `gorm:"type:varchar(50)" json:"groom_title"`
	GroomDescription string `gorm:"type:text" json:"groom_description"`
	GroomFatherName  string `gorm:"type:varchar(150)" json:"groom_father_name"`
	GroomMotherName  string `gorm:"type:varchar(150)" json:"groom_mother_name"`
	GroomPhotoURL    string `gorm:"type:varchar(500)" json:"groom_photo_url"`

	BrideName        string `gorm:"type:varchar(100)" json:"bride_name"`
	BrideFullName    string `gorm:"type:varchar(200)" json:"bride_full_name"`
	BrideTitle       string `gorm:"type:varchar(50)" json:"bride_title"`
	BrideDescription string `gorm:"type:text" json:"bride_description"`
	BrideFatherName  string `gorm:"type:varchar(150)" json:"bride_father_name"`
	BrideMotherName  string `gorm:"type:varchar(150)" json:"bride_mother_name"`
	BridePhotoURL    string `gorm:"type:varchar(500)" json:"bride_photo_url"`

	AkadDate      string `gorm:"type:varchar(10)" json:"akad_date"`
	AkadStartTime string `gorm:"type:varchar(5)" json:"akad_start_time"`
	AkadEndTime   string `gorm:"type:varchar(5)" json:"akad_end_time"`
	AkadLocation  string `gorm:"type:text" json:"akad_location"`

	ResepsiDate      string `gorm:"type:varchar(10)" json:"resepsi_date"`
	ResepsiStartTime string `gorm:"type:varchar(5)" json:"resepsi_start_time"`
	ResepsiEndTime   string `gorm:"type:varchar(5)" json:"resepsi_end_time"`
	ResepsiLocation  string `gorm:"type:text" json:"resepsi_location"`

	MapsURL       string                      `gorm:"type:varchar(1000)" json:"maps_url"`
	GalleryPhotos datatypes.JSONSlice[string] `json:"gallery_photos"`

	EventDate     string `gorm:"type:varchar(10)" json:"event_date"`
	EventTime     string `gorm:"type:varchar(5)" json:"event_time"`
	EventLocation string `gorm:"type:text" json:"event_location"`

	User         *UserProfile         `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	LoveStory    []LoveStoryMilestone `gorm:"foreignKey:InvitationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"love_story"`
	BankAccounts []BankAccount        `gorm:"foreignKey:InvitationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"bank_accounts"`
	Guests       []Guest              `gorm:"foreignKey:InvitationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// SyncLegacyFields copies the akad schedule into the legacy mirror fields.
func (inv *Invitation) SyncLegacyFields() {
	inv.EventDate = inv.AkadDate
	inv.EventTime = inv.AkadStartTime
	inv.EventLocation = inv.AkadLocation
}

// Gallery returns the gallery as a plain slice.
func (inv *Invitation) Gallery() []string {
	return []string(inv.GalleryPhotos)
}

// LoveStoryMilestone is one entry of the couple's story. Order is kept by OrderIndex.
type LoveStoryMilestone struct {
	BaseModel
	InvitationID string `gorm:"type:varchar(36);not null;index" json:"-"`
	Title        string `gorm:"type:varchar(200)" json:"title"`
	Date         string `gorm:"type:varchar(50)" json:"date"`
	Description  string `gorm:"type:text" json:"description"`
	Icon         string `gorm:"type:varchar(20)" json:"icon"`
	OrderIndex   int    `gorm:"not null;default:0" json:"order_index"`
}

func (LoveStoryMilestone) TableName() string { return "love_story" }

// BankAccount is a gift destination shown on the invitation.
type BankAccount struct {
	BaseModel
	InvitationID  string `gorm:"type:varchar(36);not null;index" json:"-"`
	BankName      string `gorm:"type:varchar(100)" json:"bank_name"`
	AccountNumber string `gorm:"type:varchar(50)" json:"account_number"`
	AccountHolder string `gorm:"type:varchar(150)" json:"account_holder"`
	OrderIndex    int    `gorm:"not null;default:0" json:"order_index"`
}
