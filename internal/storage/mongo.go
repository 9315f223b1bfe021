package storage

import (
	"context"
	"fmt"

	"eventify/internal/config"
	"eventify/internal/logger"
	"eventify/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoClient connects with pool limits from config and verifies the
// connection with a ping before handing the client out.
func NewMongoClient(ctx context.Context, cfg config.MongoConfig, log *logger.Logger) (*mongo.Client, error) {
	log.LogDatabase("CONNECT", "mongo", "Connecting to MongoDB at "+cfg.URI)

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.LogDatabase("SUCCESS", "mongo", "MongoDB connection established")
	return client, nil
}

// eventDoc is the BSON shape of an event; _id stays an ObjectID inside Mongo
// and is exposed to the rest of the system as its hex string.
type eventDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Location         string             `bson:"location"`
	Date             string             `bson:"date"`
	Price            float64            `bson:"price"`
	TicketsAvailable int                `bson:"tickets_available"`
	Description      string             `bson:"description"`
	Picture          string             `bson:"picture"`
}

func (d *eventDoc) toModel() *models.Event {
	return &models.Event{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Location:         d.Location,
		Date:             d.Date,
		Price:            d.Price,
		TicketsAvailable: d.TicketsAvailable,
		Description:      d.Description,
		Picture:          d.Picture,
	}
}

func docFromModel(event *models.Event) eventDoc {
	return eventDoc{
		Name:             event.Name,
		Location:         event.Location,
		Date:             event.Date,
		Price:            event.Price,
		TicketsAvailable: event.TicketsAvailable,
		Description:      event.Description,
		Picture:          event.Picture,
	}
}

// MongoEventStore implements EventStore over the events collection.
type MongoEventStore struct {
	collection *mongo.Collection
	log        *logger.Logger
}

func NewMongoEventStore(client *mongo.Client, database string, log *logger.Logger) *MongoEventStore {
	return &MongoEventStore{
		collection: client.Database(database).Collection("events"),
		log:        log,
	}
}

func (s *MongoEventStore) CreateEvent(ctx context.Context, event *models.Event) (string, error) {
	s.log.LogDatabase("INSERT", "mongo", fmt.Sprintf("Creating event %q", event.Name))

	result, err := s.collection.InsertOne(ctx, docFromModel(event))
	if err != nil {
		s.log.Error("DATABASE", "Failed to insert event: "+err.Error())
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	event.ID = oid.Hex()
	s.log.LogDatabase("SUCCESS", "mongo", fmt.Sprintf("Event %s created", event.ID))
	return event.ID, nil
}

func (s *MongoEventStore) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	var doc eventDoc
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			s.log.LogDatabase("NOT_FOUND", "mongo", fmt.Sprintf("Event %s not found", id))
			return nil, ErrNotFound
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get event %s: %s", id, err.Error()))
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return doc.toModel(), nil
}

func (s *MongoEventStore) ListEvents(ctx context.Context, search string, page, perPage int) ([]models.Event, int64, error) {
	filter := bson.M{}
	if search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"location": regex},
			bson.M{"description": regex},
		}
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		s.log.Error("DATABASE", "Failed to count events: "+err.Error())
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	findOpts := options.Find().
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		s.log.Error("DATABASE", "Failed to list events: "+err.Error())
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "mongo", fmt.Sprintf("Listed %d of %d events", len(events), total))
	return events, total, nil
}

// UpdateEvent replaces every mutable field. Last writer wins: there is no
// version check, so two concurrent updates can silently lose one of them.
func (s *MongoEventStore) UpdateEvent(ctx context.Context, id string, event *models.Event) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"name":              event.Name,
		"location":          event.Location,
		"date":              event.Date,
		"price":             event.Price,
		"tickets_available": event.TicketsAvailable,
		"description":       event.Description,
		"picture":           event.Picture,
	}}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to update event %s: %s", id, err.Error()))
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	s.log.LogDatabase("SUCCESS", "mongo", fmt.Sprintf("Event %s updated", id))
	return nil
}

func (s *MongoEventStore) DeleteEvent(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to delete event %s: %s", id, err.Error()))
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	s.log.LogDatabase("SUCCESS", "mongo", fmt.Sprintf("Event %s deleted", id))
	return nil
}

// MongoNotificationStore implements the append-only notification audit log.
type MongoNotificationStore struct {
	collection *mongo.Collection
	log        *logger.Logger
}

func NewMongoNotificationStore(client *mongo.Client, database string, log *logger.Logger) *MongoNotificationStore {
	return &MongoNotificationStore{
		collection: client.Database(database).Collection("notifications"),
		log:        log,
	}
}

func (s *MongoNotificationStore) AppendNotification(ctx context.Context, record *models.NotificationRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}

	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		s.log.Error("DATABASE", "Failed to append notification record: "+err.Error())
		return fmt.Errorf("failed to append notification record: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "mongo", fmt.Sprintf("Notification record %s appended for booking %d", record.ID, record.BookingID))
	return nil
}

func (s *MongoNotificationStore) ListNotificationsByBooking(ctx context.Context, bookingID int64) ([]*models.NotificationRecord, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to list notification records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.NotificationRecord
	for cursor.Next(ctx) {
		record := &models.NotificationRecord{}
		if err := cursor.Decode(record); err != nil {
			return nil, fmt.Errorf("failed to decode notification record: %w", err)
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return records, nil
}
