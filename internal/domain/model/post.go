package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a blog article authored in markdown.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Slug        string             `bson:"slug" json:"slug" yaml:"slug"`
	Title       string             `bson:"title" json:"title" yaml:"title"`
	Summary     string             `bson:"summary,omitempty" json:"summary,omitempty" yaml:"summary"`
	Author      string             `bson:"author,omitempty" json:"author,omitempty" yaml:"author"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty" yaml:"tags"`
	CoverImage  string             `bson:"cover_image,omitempty" json:"cover_image,omitempty" yaml:"cover_image"`
	Markdown    string             `bson:"markdown" json:"-" yaml:"-"`
	Published   bool               `bson:"published" json:"published" yaml:"published"`
	PublishedAt *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty" yaml:"published_at"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at" yaml:"-"`
}

// ShareLinks are prefilled URLs for cross-posting an article.
type ShareLinks struct {
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Facebook string `json:"facebook"`
}

// RenderedPost is a post with its sanitized HTML body.
type RenderedPost struct {
	Post
	HTML       string     `json:"html"`
	ShareLinks ShareLinks `json:"share_links"`
}
