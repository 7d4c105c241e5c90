package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"wandr_ingest/internal/domain"
)

func TestGetBooking_CachesAfterMiss(t *testing.T) {
	store := newFakeStore()
	store.view = domain.BookingView{ChannelBookingID: "R1", Hotel: "Wandr Vega", GuestCount: 2}
	cache := newFakeCache()
	q := NewQueryService(store, cache, time.Minute)

	for i := 0; i < 3; i++ {
		bv, err := q.GetBooking(context.Background(), "R1")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if bv.Hotel != "Wandr Vega" || bv.GuestCount != 2 {
			t.Fatalf("call %d returned %+v", i, bv)
		}
	}
	if store.getCalls != 1 {
		t.Fatalf("store hit %d times, want 1", store.getCalls)
	}
	if cache.sets != 1 {
		t.Fatalf("cache set %d times, want 1", cache.sets)
	}
}

func TestGetBooking_NotFoundNotCached(t *testing.T) {
	store := newFakeStore()
	store.viewErr = domain.ErrNotFound
	cache := newFakeCache()
	q := NewQueryService(store, cache, time.Minute)

	if _, err := q.GetBooking(context.Background(), "NOPE"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if cache.sets != 0 {
		t.Fatalf("a miss must not be cached")
	}
}

func TestListHotels_CachesAfterMiss(t *testing.T) {
	store := newFakeStore()
	store.summaries = []domain.HotelSummary{
		{ID: 1, Name: "Wandr Vega", InventoryCount: 1, BookingCount: 10},
		{ID: 2, Name: "Wandr Centauri", InventoryCount: 2, BookingCount: 4},
	}
	cache := newFakeCache()
	q := NewQueryService(store, cache, time.Minute)

	first, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	second, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	if store.listCalls != 1 {
		t.Fatalf("store hit %d times, want 1", store.listCalls)
	}
	if len(first) != 2 || len(second) != 2 || second[1].Name != "Wandr Centauri" {
		t.Fatalf("results diverged: %v vs %v", first, second)
	}
}
