package todo

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/todo-service/domain/todo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// todoDocument is the MongoDB representation of a todo.
type todoDocument struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty"`
	UUID        string             `bson:"uuid"`
	Title       string             `bson:"title"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"created_at"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty"`
}

func toDocument(todo domain.Todo) todoDocument {
	return todoDocument{
		UUID:        todo.ID,
		Title:       todo.Title,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		CompletedAt: todo.CompletedAt,
	}
}

func (d todoDocument) toDomain() domain.Todo {
	todo := domain.Todo{
		ID:        d.UUID,
		Title:     d.Title,
		Completed: d.Completed,
		CreatedAt: d.CreatedAt.UTC(),
	}
	if !d.ObjectID.IsZero() {
		todo.StorageID = d.ObjectID.Hex()
	}
	if d.CompletedAt != nil {
		completedAt := d.CompletedAt.UTC()
		todo.CompletedAt = &completedAt
	}
	return todo
}

// MongoStore persists todos in a MongoDB collection.
// Todos are looked up by their uuid field, never by _id.
type MongoStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

var (
	_ domain.Store  = (*MongoStore)(nil)
	_ domain.Pinger = (*MongoStore)(nil)
)

// NewMongoStore creates a store on top of an existing collection.
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{
		collection: collection,
		now:        domain.Now,
	}
}

// EnsureIndexes creates the unique index on the todo identifier.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uuid", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uuid_unique"),
	})
	if err != nil {
		return fmt.Errorf("create uuid index: %w", errors.Join(domain.ErrStorageUnavailable, err))
	}
	return nil
}

// Create inserts a new pending todo and returns it with the assigned _id.
func (s *MongoStore) Create(ctx context.Context, title string) (domain.Todo, error) {
	todo := domain.New(title, s.now())

	result, err := s.collection.InsertOne(ctx, toDocument(todo))
	if err != nil {
		return domain.Todo{}, fmt.Errorf("insert todo %s: %w", todo.ID, errors.Join(domain.ErrStorageUnavailable, err))
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		todo.StorageID = oid.Hex()
	}
	return todo, nil
}

// List returns every todo ordered by creation time.
func (s *MongoStore) List(ctx context.Context) ([]domain.Todo, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", errors.Join(domain.ErrStorageUnavailable, err))
	}

	var docs []todoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", errors.Join(domain.ErrStorageUnavailable, err))
	}

	todos := make([]domain.Todo, 0, len(docs))
	for _, doc := range docs {
		todos = append(todos, doc.toDomain())
	}
	return todos, nil
}

// Toggle flips the completion state in a single atomic update.
// The new completed and completed_at values are both computed by the server
// from the document as it was before the update.
func (s *MongoStore) Toggle(ctx context.Context, id string) (domain.Todo, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc todoDocument
	err := s.collection.FindOneAndUpdate(ctx, bson.D{{Key: "uuid", Value: id}}, toggleUpdate(s.now()), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Todo{}, fmt.Errorf("toggle todo %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Todo{}, fmt.Errorf("toggle todo %s: %w", id, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return doc.toDomain(), nil
}

// toggleUpdate builds the aggregation pipeline update used by Toggle.
// Field paths inside one $set stage resolve against the pre-update document.
func toggleUpdate(now time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "completed", Value: bson.D{{Key: "$not", Value: bson.A{"$completed"}}}},
			{Key: "completed_at", Value: bson.D{{Key: "$cond", Value: bson.A{"$completed", "$$REMOVE", now}}}},
		}}},
	}
}

// Ping checks that the MongoDB deployment is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.collection.Database().Client().Ping(ctx, nil); err != nil {
		return errors.Join(domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ConnectMongo dials MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}
