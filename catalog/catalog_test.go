package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotostand/index"
	"fotostand/models"
)

type fakeIndex struct {
	lastQuery index.Query
	items     []models.Photo
	total     int64
	err       error
}

func (f *fakeIndex) Query(_ context.Context, q index.Query) ([]models.Photo, int64, error) {
	f.lastQuery = q
	return f.items, f.total, f.err
}

func (f *fakeIndex) FindByID(context.Context, string) (models.Photo, error) {
	return models.Photo{}, errors.New("not found")
}
func (f *fakeIndex) FindByIDs(context.Context, []string) ([]models.Photo, error) { return nil, nil }

func (f *fakeIndex) Insert(context.Context, models.Photo) (string, error) { return "", nil }

func (f *fakeIndex) DeleteByID(context.Context, string) error { return nil }

func (f *fakeIndex) DeleteByIDs(context.Context, []string) error { return nil }

func TestList_BuildsAscendingPagedQuery(t *testing.T) {
	idx := &fakeIndex{
		items: []models.Photo{{Number: 11}, {Number: 12}},
		total: 47,
	}
	s := &Service{Index: idx}

	page, err := s.List(context.Background(), "07", nil, 2)
	require.NoError(t, err)

	assert.Equal(t, "07", idx.lastQuery.Day)
	assert.Nil(t, idx.lastQuery.Number)
	assert.True(t, idx.lastQuery.Ascending)
	assert.Equal(t, int64(10), idx.lastQuery.Offset)
	assert.Equal(t, int64(10), idx.lastQuery.Limit)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(47), page.Total)
}

func TestList_NumberFilterPassesThrough(t *testing.T) {
	idx := &fakeIndex{total: 1}
	s := &Service{Index: idx}

	number := 42
	_, err := s.List(context.Background(), "08", &number, 1)
	require.NoError(t, err)

	require.NotNil(t, idx.lastQuery.Number)
	assert.Equal(t, 42, *idx.lastQuery.Number)
	assert.Equal(t, int64(0), idx.lastQuery.Offset)
}

func TestList_ClampsPageToOne(t *testing.T) {
	idx := &fakeIndex{}
	s := &Service{Index: idx}

	_, err := s.List(context.Background(), "07", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), idx.lastQuery.Offset)

	_, err = s.List(context.Background(), "07", nil, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), idx.lastQuery.Offset)
}

func TestList_CustomPageSize(t *testing.T) {
	idx := &fakeIndex{}
	s := &Service{Index: idx, PageSize: 25}

	_, err := s.List(context.Background(), "07", nil, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(50), idx.lastQuery.Offset)
	assert.Equal(t, int64(25), idx.lastQuery.Limit)
}

func TestList_PropagatesIndexError(t *testing.T) {
	idx := &fakeIndex{err: errors.New("index down")}
	s := &Service{Index: idx}

	_, err := s.List(context.Background(), "07", nil, 1)
	require.Error(t, err)
}
