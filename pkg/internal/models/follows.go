package models

// Follow is a directed edge, the follower receives posts of the author in the following feed.
type Follow struct {
	BaseModel

	FollowerID uint `json:"follower_id" gorm:"uniqueIndex:idx_follow_pair"`
	Follower   User `json:"follower" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID   uint `json:"author_id" gorm:"uniqueIndex:idx_follow_pair;index"`
	Author     User `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}
