package models

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:40;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:40;not null"`
}

func (Genre) TableName() string {
	return "genres"
}
