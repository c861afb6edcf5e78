package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

// LedgerRepository stores bookings and deposits in one collection. Each
// document carries a kind tag and exactly one of the variant payloads.
type LedgerRepository struct {
	col *mongo.Collection
	ids *counters
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{col: db.Collection(collectionLedger), ids: newCounters(db)}
}

type ledgerDocument struct {
	Seq        int              `bson:"_id"`
	Kind       domain.EntryKind `bson:"kind"`
	Booking    *domain.Booking  `bson:"booking,omitempty"`
	Deposit    *domain.Deposit  `bson:"deposit,omitempty"`
	RecordedAt time.Time        `bson:"recorded_at"`
}

func (r *LedgerRepository) Append(ctx context.Context, entry domain.LedgerEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seq, err := r.ids.next(ctx, collectionLedger)
	if err != nil {
		return err
	}
	entry.SetSequence(seq)

	doc := ledgerDocument{Seq: seq, Kind: entry.Kind(), RecordedAt: time.Now().UTC()}
	switch e := entry.(type) {
	case *domain.Booking:
		doc.Booking = e
	case *domain.Deposit:
		doc.Deposit = e
	default:
		return fmt.Errorf("append ledger: unsupported entry %T", entry)
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append ledger: %w", err)
	}
	return nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	var docs []ledgerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}

	entries := make([]domain.LedgerEntry, 0, len(docs))
	for _, d := range docs {
		switch {
		case d.Kind == domain.KindBooking && d.Booking != nil:
			entries = append(entries, d.Booking)
		case d.Kind == domain.KindDeposit && d.Deposit != nil:
			entries = append(entries, d.Deposit)
		default:
			return nil, fmt.Errorf("decode ledger: entry %d has unknown kind %q", d.Seq, d.Kind)
		}
	}
	return entries, nil
}
