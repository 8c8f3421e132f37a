// Package deletion removes photos from both backing stores. The object is
// always deleted before the index row: the index answers "does this
// exist", so the object must be gone no later than the row.
package deletion

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fotostand/index"
	"fotostand/models"
)

// DefaultSweepPageSize is how many rows a global purge takes per round.
const DefaultSweepPageSize = 100

// ErrConfirmationMismatch means the typed purge confirmation did not
// match; nothing was deleted.
var ErrConfirmationMismatch = errors.New("confirmation phrase does not match")

// ConfirmPhrase is the literal an operator must type to purge a day.
func ConfirmPhrase(day string) string {
	return "DELETE " + day
}

// ObjectDeleter is the slice of the object store deletion needs.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// Coordinator runs single, selection and whole-day deletes.
type Coordinator struct {
	Store         ObjectDeleter
	Index         index.PhotoIndex
	SweepPageSize int64
}

// DeleteOne removes a single photo, object first.
func (c *Coordinator) DeleteOne(ctx context.Context, photo models.Photo) error {
	if err := c.Store.Delete(ctx, photo.ObjectKey()); err != nil {
		return fmt.Errorf("delete object %s: %w", photo.ObjectKey(), err)
	}
	if err := c.Index.DeleteByID(ctx, photo.ID.Hex()); err != nil {
		return fmt.Errorf("delete row %s: %w", photo.ID.Hex(), err)
	}
	return nil
}

// DeleteSelection removes an explicitly selected set of photos: object
// deletes fan out together, then one delete-by-ids clears the rows. On
// error the caller must refresh the listing, the visible list was already
// trimmed optimistically.
func (c *Coordinator) DeleteSelection(ctx context.Context, photos []models.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, photo := range photos {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Store.Delete(ctx, photo.ObjectKey()); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("delete object %s: %w", photo.ObjectKey(), err)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}

	ids := make([]string, 0, len(photos))
	for _, photo := range photos {
		ids = append(ids, photo.ID.Hex())
	}
	if err := c.Index.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete rows: %w", err)
	}
	return nil
}

// PurgeDay deletes every photo of one event day without materializing the
// result set. It sweeps fixed-size pages, always re-querying from offset
// zero: each round's deletions remove the rows just returned, so the same
// query drains the set and an empty result is the termination condition.
// The confirmation must equal ConfirmPhrase(day) exactly, otherwise
// ErrConfirmationMismatch is returned before any side effect.
func (c *Coordinator) PurgeDay(ctx context.Context, day, confirmation string) (int, error) {
	if confirmation != ConfirmPhrase(day) {
		return 0, ErrConfirmationMismatch
	}

	pageSize := c.SweepPageSize
	if pageSize <= 0 {
		pageSize = DefaultSweepPageSize
	}

	deleted := 0
	for {
		photos, _, err := c.Index.Query(ctx, index.Query{
			Day:       day,
			Ascending: true,
			Offset:    0,
			Limit:     pageSize,
		})
		if err != nil {
			return deleted, fmt.Errorf("query sweep page: %w", err)
		}
		if len(photos) == 0 {
			return deleted, nil
		}

		if err := c.DeleteSelection(ctx, photos); err != nil {
			return deleted, err
		}
		deleted += len(photos)
	}
}
