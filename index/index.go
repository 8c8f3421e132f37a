// Package index is the metadata side of a photo: one MongoDB row per
// stored object, with filtered paged reads and exact counts.
package index

import (
	"context"

	"fotostand/models"
)

// Query selects photos of one event day, optionally narrowed to a single
// photo number. Offset/Limit page through the matches; Ascending orders by
// photo number (descending means newest upload first).
type Query struct {
	Day       string
	Number    *int
	Ascending bool
	Offset    int64
	Limit     int64
}

// PhotoIndex is the metadata store contract. Query returns the requested
// window of rows plus the exact total match count independent of paging.
type PhotoIndex interface {
	Query(ctx context.Context, q Query) ([]models.Photo, int64, error)
	FindByID(ctx context.Context, id string) (models.Photo, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Photo, error)
	Insert(ctx context.Context, photo models.Photo) (string, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
}
