package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Photo is a single numbered event photograph: the object lives in R2
// under S3Key, the row lives in MongoDB.
type Photo struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Number       int           `json:"number" bson:"number"`
	Day          string        `json:"day" bson:"day"` // event day code, e.g. "07"
	S3Key        string        `json:"s3_key" bson:"s3_key"`
	URL          string        `json:"url" bson:"url"`
	OriginalName string        `json:"original_name,omitempty" bson:"original_name,omitempty"`
	UploadedAt   time.Time     `json:"uploaded_at" bson:"uploaded_at"`
}

// ObjectKey returns the storage key for the photo. Rows written before
// s3_key existed re-derive it from the day and the URL's trailing segment.
func (p Photo) ObjectKey() string {
	if p.S3Key != "" {
		return p.S3Key
	}
	name := p.URL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return p.Day + "/" + name
}
