package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")

// ErrSkipRow marks a row-local failure: the orchestrator counts it as
// skipped and moves on, it never aborts the batch.
var ErrSkipRow = errors.New("skip row")

// ValidationError rejects a whole batch before any row is persisted
// (dialect-hinted uploads only).
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Problems, "; "))
}

// RecordSource reads one delimited file into ordered records with
// normalized headers. Each call re-reads the file from the start.
type RecordSource interface {
	Read(path string) ([]Record, error)
}

// Store opens batch transactions and serves the read side.
type Store interface {
	Begin(ctx context.Context) (Tx, error)

	GetBooking(ctx context.Context, channelBookingID string) (BookingView, error)
	ListHotels(ctx context.Context) ([]HotelSummary, error)
}

// Tx is one batch transaction. Every resolver runs inside it, so later rows
// observe reference entities created by earlier rows before commit.
// Resolvers find by natural key, else insert and return the generated id.
type Tx interface {
	ResolveHotel(ctx context.Context, name string) (int64, error)
	ResolveTraveller(ctx context.Context, t Traveller) (int64, error)
	ResolveStatus(ctx context.Context, name string) (int64, error)
	ResolveChannel(ctx context.Context, name string) (int64, error)
	ResolveCountry(ctx context.Context, name string) (int64, error)
	ResolveRegion(ctx context.Context, countryID int64, name string) (int64, error)
	ResolveRatePlan(ctx context.Context, name string) (int64, error)
	ResolveRoomType(ctx context.Context, hotelID int64, name string) (int64, error)

	UpsertBooking(ctx context.Context, b Booking) error

	Commit() error
	Rollback() error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
