package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogVersion is a published catalog. Document holds the catalog as YAML
// so that a version can be re-validated exactly as it was published.
type CatalogVersion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Version   int                `bson:"version" json:"version"`
	Document  string             `bson:"document" json:"-"`
	Active    bool               `bson:"active" json:"active"`
	Checksum  string             `bson:"checksum" json:"checksum"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
