package models

type Group struct {
	BaseModel

	Title       string `json:"title" gorm:"size:200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:100" validate:"lowercase"`
	Description string `json:"description"`
}
