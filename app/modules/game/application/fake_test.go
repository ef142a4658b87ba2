package gameservice

import (
	"context"
	"sync"
	"time"

	gamedb "github.com/Black-And-White-Club/dart-stats/app/modules/game/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Game Repo
// ------------------------

// FakeGameRepository provides a programmable stub for the gamedb.Repository interface.
type FakeGameRepository struct {
	trace []string

	InsertFunc     func(ctx context.Context, db bun.IDB, game *gamedb.Game) error
	ListByUserFunc func(ctx context.Context, db bun.IDB, userID string, limit int) ([]gamedb.Game, error)
}

// NewFakeGameRepository initializes a new FakeGameRepository with an empty trace.
func NewFakeGameRepository() *FakeGameRepository {
	return &FakeGameRepository{
		trace: []string{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGameRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeGameRepository) Insert(ctx context.Context, db bun.IDB, game *gamedb.Game) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, game)
	}
	// Default: behave like the database and assign id and timestamp.
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	now := time.Now().UTC()
	game.CreatedAt = &now
	return nil
}

func (f *FakeGameRepository) ListByUser(ctx context.Context, db bun.IDB, userID string, limit int) ([]gamedb.Game, error) {
	f.record("ListByUser")
	if f.ListByUserFunc != nil {
		return f.ListByUserFunc(ctx, db, userID, limit)
	}
	return []gamedb.Game{}, nil
}

var _ gamedb.Repository = (*FakeGameRepository)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedMessage struct {
	Topic   string
	Message *message.Message
}

// FakePublisher records published messages.
type FakePublisher struct {
	mu        sync.Mutex
	published []publishedMessage

	PublishFunc func(topic string, messages ...*message.Message) error
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	if p.PublishFunc != nil {
		if err := p.PublishFunc(topic, messages...); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range messages {
		p.published = append(p.published, publishedMessage{Topic: topic, Message: m})
	}
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Published() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedMessage, len(p.published))
	copy(out, p.published)
	return out
}

var _ message.Publisher = (*FakePublisher)(nil)
