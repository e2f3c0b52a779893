package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type todoDocument struct {
	ID          bson.ObjectID `bson:"_id"`
	Text        string        `bson:"text"`
	Completed   bool          `bson:"completed"`
	CompletedAt *int64        `bson:"completedAt"`
	Creator     bson.ObjectID `bson:"_creator"`
}

func (d *todoDocument) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          d.ID.Hex(),
		OwnerID:     d.Creator.Hex(),
		Text:        d.Text,
		Completed:   d.Completed,
		CompletedAt: d.CompletedAt,
	}
}

type TodoRepository struct {
	coll *mongo.Collection
}

func NewTodoRepository(c *Client) *TodoRepository {
	return &TodoRepository{coll: c.db.Collection(todosCollection)}
}

func (r *TodoRepository) Create(ctx context.Context, ownerID, text string) (*domain.Todo, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return nil, fmt.Errorf("insert todo: malformed owner id %q", ownerID)
	}
	doc := todoDocument{ID: bson.NewObjectID(), Text: text, Creator: owner}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	owner, ok := parseID(ownerID)
	if !ok {
		return []*domain.Todo{}, nil
	}
	// ObjectIDs grow with insertion time, so _id order is insertion order.
	cur, err := r.coll.Find(ctx,
		bson.D{{Key: "_creator", Value: owner}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	todos := make([]*domain.Todo, len(docs))
	for i := range docs {
		todos[i] = docs[i].toDomain()
	}
	return todos, nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return decodeTodo(r.coll.FindOne(ctx, filter))
}

func (r *TodoRepository) Update(ctx context.Context, id, ownerID string, ch domain.TodoChanges) (*domain.Todo, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}

	set := bson.D{
		{Key: "completed", Value: ch.Completed},
		{Key: "completedAt", Value: ch.CompletedAt},
	}
	if ch.Text != nil {
		set = append(set, bson.E{Key: "text", Value: *ch.Text})
	}

	return decodeTodo(r.coll.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	))
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return decodeTodo(r.coll.FindOneAndDelete(ctx, filter))
}

// ownedFilter matches a todo by id and owner. ok is false when either id is malformed.
func ownedFilter(id, ownerID string) (bson.D, bool) {
	tid, ok := parseID(id)
	if !ok {
		return nil, false
	}
	owner, ok := parseID(ownerID)
	if !ok {
		return nil, false
	}
	return bson.D{{Key: "_id", Value: tid}, {Key: "_creator", Value: owner}}, true
}

func decodeTodo(res *mongo.SingleResult) (*domain.Todo, error) {
	var doc todoDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("decode todo: %w", err)
	}
	return doc.toDomain(), nil
}
