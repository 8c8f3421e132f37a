package index

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fotostand/models"
)

// Mongo implements PhotoIndex on a MongoDB collection.
type Mongo struct {
	collection *mongo.Collection
}

func NewMongo(client *mongo.Client, database, collection string) *Mongo {
	return &Mongo{collection: client.Database(database).Collection(collection)}
}

func (m *Mongo) filter(q Query) bson.M {
	filter := bson.M{"day": q.Day}
	if q.Number != nil {
		filter["number"] = *q.Number
	}
	return filter
}

func (m *Mongo) Query(ctx context.Context, q Query) ([]models.Photo, int64, error) {
	filter := m.filter(q)

	total, err := m.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	order := -1
	if q.Ascending {
		order = 1
	}
	findOptions := options.Find().
		SetSkip(q.Offset).
		SetLimit(q.Limit).
		SetSort(bson.D{{Key: "number", Value: order}})

	cursor, err := m.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var photos []models.Photo
	if err = cursor.All(ctx, &photos); err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

func (m *Mongo) FindByID(ctx context.Context, id string) (models.Photo, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return models.Photo{}, err
	}
	var photo models.Photo
	if err := m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&photo); err != nil {
		return models.Photo{}, err
	}
	return photo, nil
}

func (m *Mongo) FindByIDs(ctx context.Context, ids []string) ([]models.Photo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	cursor, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var photos []models.Photo
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Insert upserts by (day, number): re-uploading a number replaces the old
// row, matching the object store where the key was already overwritten.
func (m *Mongo) Insert(ctx context.Context, photo models.Photo) (string, error) {
	photo.UploadedAt = time.Now()

	filter := bson.M{"day": photo.Day, "number": photo.Number}
	update := bson.M{"$set": bson.M{
		"number":        photo.Number,
		"day":           photo.Day,
		"s3_key":        photo.S3Key,
		"url":           photo.URL,
		"original_name": photo.OriginalName,
		"uploaded_at":   photo.UploadedAt,
	}}

	result, err := m.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return "", err
	}
	if id, ok := result.UpsertedID.(bson.ObjectID); ok {
		return id.Hex(), nil
	}

	// Replaced an existing row, fetch its id.
	var existing models.Photo
	if err := m.collection.FindOne(ctx, filter).Decode(&existing); err != nil {
		return "", err
	}
	return existing.ID.Hex(), nil
}

func (m *Mongo) DeleteByID(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = m.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (m *Mongo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return err
		}
		oids = append(oids, oid)
	}
	_, err := m.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	return err
}
