package model

import (
	"time"

	"gorm.io/gorm"
)

/*

Post is a single feed entry created by a user

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time of the last edit
DeletedAt: time when entity is deleted

Title: post's title in plain text
Content: post's content in plain text
ImageUrl: relative path to the stored image, served under /images
CreatorID:
Creator: the user who owns this post, "belongs-to" relation. Only the creator
		may update or delete the post.

Cursor: The auto-inc global-unique index to keep the relative order of posts
*/

type Post struct {
	Id        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	ImageUrl  string         `json:"imageUrl"`
	CreatorID string         `gorm:"index" json:"creatorId"`
	Creator   *User          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator,omitempty"`
	Cursor    int32          `gorm:"autoIncrement"`
}
