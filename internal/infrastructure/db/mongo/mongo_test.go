package mongo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
)

func TestPageOptions(t *testing.T) {
	opts := pageOptions(ports.Page{Number: 3, Size: 10}, "visit_date")

	if opts.Skip == nil || *opts.Skip != 20 {
		t.Fatalf("expected skip 20, got %v", opts.Skip)
	}
	if opts.Limit == nil || *opts.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", opts.Limit)
	}
	sort, ok := opts.Sort.(bson.D)
	if !ok || len(sort) != 2 || sort[0].Key != "visit_date" || sort[1].Key != "_id" {
		t.Fatalf("unexpected sort: %#v", opts.Sort)
	}
}

func TestUserDocumentRoundTrip(t *testing.T) {
	u := &domain.User{ID: "u1", Username: "alice", PasswordHash: "hash", Role: domain.RoleAdmin}
	got := toUserDocument(u).toDomain()

	if got.ID != "u1" || got.Username != "alice" || got.Role != domain.RoleAdmin || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.CreatedAt.IsZero() {
		t.Fatalf("zero created_at should stay zero, got %v", got.CreatedAt)
	}
}

type fakeIndexer struct {
	calls *[]string
	name  string
	err   error
}

func (f fakeIndexer) EnsureIndexes(context.Context) error {
	*f.calls = append(*f.calls, f.name)
	return f.err
}

func TestEnsureIndexes_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	err := EnsureIndexes(context.Background(),
		fakeIndexer{calls: &calls, name: "users"},
		fakeIndexer{calls: &calls, name: "visits", err: boom},
		fakeIndexer{calls: &calls, name: "photos"},
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %v", calls)
	}
}
