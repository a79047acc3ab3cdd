package models

type Post struct {
	BaseModel

	Text     string  `json:"text"`
	Language string  `json:"language"`
	Image    *string `json:"image"`
	ImageURL *string `json:"image_url" gorm:"-"`

	AuthorID uint   `json:"author_id" gorm:"index"`
	Author   User   `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	GroupID  *uint  `json:"group_id" gorm:"index"`
	Group    *Group `json:"group" gorm:"constraint:OnDelete:SET NULL"`
}
