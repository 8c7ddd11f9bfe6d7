package models

// Theme categories used by the gallery filter.
const (
	ThemeCategoryElegant    = "elegant"
	ThemeCategoryModern     = "modern"
	ThemeCategoryRustic     = "rustic"
	ThemeCategoryMinimalist = "minimalist"
	ThemeCategoryFloral     = "floral"
)

// ThemeCategories lists the categories in display order.
var ThemeCategories = []string{
	ThemeCategoryElegant,
	ThemeCategoryModern,
	ThemeCategoryRustic,
	ThemeCategoryMinimalist,
	ThemeCategoryFloral,
}

// Theme is a selectable visual template. Slug picks the rendering template.
type Theme struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name" form:"name"`
	Description  string `gorm:"type:text" json:"description" form:"description"`
	ThumbnailURL string `gorm:"type:varchar(500)" json:"thumbnail_url" form:"thumbnail_url"`
	Category     string `gorm:"type:varchar(30);index" json:"category" form:"category"`
	Slug         string `gorm:"type:varchar(50);not null;index" json:"slug" form:"slug"`
	IsActive     bool   `gorm:"not null;index" json:"is_active" form:"-"`
}
