package app

import (
	"context"
	"time"

	"wandr_ingest/internal/domain"
)

type QueryService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(store domain.Store, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: store, cache: cache, cacheTTL: ttl}
}

func (s *QueryService) GetBooking(ctx context.Context, channelBookingID string) (domain.BookingView, error) {
	key := "booking:" + channelBookingID
	var bv domain.BookingView
	if ok, _ := s.cache.Get(ctx, key, &bv); ok {
		return bv, nil
	}
	bv, err := s.store.GetBooking(ctx, channelBookingID)
	if err != nil {
		return domain.BookingView{}, err
	}
	_ = s.cache.Set(ctx, key, bv, int(s.cacheTTL.Seconds()))
	return bv, nil
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.HotelSummary, error) {
	key := "hotels:summary"
	var out []domain.HotelSummary
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	hs, err := s.store.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers can't mutate the cached slice
	cp := make([]domain.HotelSummary, len(hs))
	copy(cp, hs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return hs, nil
}
