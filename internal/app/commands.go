package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"wandr_ingest/internal/adapters/observability"
	"wandr_ingest/internal/domain"
)

type ImportService struct {
	source      domain.RecordSource
	store       domain.Store
	cache       domain.Cache
	defaultYear int
}

func NewImportService(src domain.RecordSource, store domain.Store, cache domain.Cache, defaultYear int) *ImportService {
	return &ImportService{source: src, store: store, cache: cache, defaultYear: defaultYear}
}

// ProcessFile runs one upload batch: read the whole file, validate it when
// a dialect is claimed, then normalize/resolve/upsert every row inside a
// single transaction. Row failures are counted and skipped; read, begin and
// commit failures abort the batch with whatever counts had accumulated.
func (s *ImportService) ProcessFile(ctx context.Context, path, dialectHint string) (domain.ImportResult, error) {
	var res domain.ImportResult
	start := time.Now()
	defer func() { observability.BatchDuration.Observe(time.Since(start).Seconds()) }()

	records, err := s.source.Read(path)
	if err != nil {
		observability.ObserveBatch("read_failed")
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	d := DialectFor(dialectHint)
	if err := ValidateBatch(records, d); err != nil {
		observability.ObserveBatch("rejected")
		return res, err
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		observability.ObserveBatch("begin_failed")
		return res, fmt.Errorf("begin transaction: %w", err)
	}

	processed := make([]string, 0, len(records))
	for i, rec := range records {
		bookingID, rowErr := s.processRow(ctx, tx, rec, d)
		if rowErr != nil {
			// A dead context means the store is gone, not a bad row.
			if ctx.Err() != nil {
				_ = tx.Rollback()
				observability.ObserveBatch("aborted")
				return res, fmt.Errorf("row %d: %w", i+1, rowErr)
			}
			res.SkippedRows++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, rowErr))
			observability.RowsSkipped.Inc()
			log.Warn().Int("row", i+1).Err(rowErr).Msg("row skipped")
			continue
		}
		res.ProcessedRows++
		observability.RowsProcessed.Inc()
		processed = append(processed, bookingID)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		observability.ObserveBatch("commit_failed")
		return res, fmt.Errorf("commit: %w", err)
	}
	observability.ObserveBatch("committed")

	if s.cache != nil {
		s.invalidate(ctx, processed)
	}

	log.Info().
		Str("file", path).
		Str("dialect", d.Name).
		Int("processed", res.ProcessedRows).
		Int("skipped", res.SkippedRows).
		Msg("batch committed")
	return res, nil
}

// processRow is one row end to end: normalize, resolve every reference
// dimension, upsert the booking. Any error makes the row skippable.
func (s *ImportService) processRow(ctx context.Context, tx domain.Tx, rec domain.Record, d Dialect) (string, error) {
	br, err := NormalizeRow(rec, d, s.defaultYear)
	if err != nil {
		return "", err
	}

	hotelID, err := tx.ResolveHotel(ctx, br.HotelName)
	if err != nil {
		return "", fmt.Errorf("resolve hotel %q: %w", br.HotelName, err)
	}
	travellerID, err := tx.ResolveTraveller(ctx, domain.Traveller{
		Name:        br.TravellerName,
		Email:       br.TravellerEmail,
		Mobile:      br.TravellerPhone,
		Gender:      br.Gender,
		DateOfBirth: br.DateOfBirth,
		RawJSON:     br.RawJSON,
	})
	if err != nil {
		return "", fmt.Errorf("resolve traveller: %w", err)
	}
	statusID, err := tx.ResolveStatus(ctx, br.Status)
	if err != nil {
		return "", fmt.Errorf("resolve status %q: %w", br.Status, err)
	}
	channelID, err := tx.ResolveChannel(ctx, br.Channel)
	if err != nil {
		return "", fmt.Errorf("resolve channel %q: %w", br.Channel, err)
	}
	countryID, err := tx.ResolveCountry(ctx, br.Country)
	if err != nil {
		return "", fmt.Errorf("resolve country %q: %w", br.Country, err)
	}
	regionID, err := tx.ResolveRegion(ctx, countryID, br.Region)
	if err != nil {
		return "", fmt.Errorf("resolve region %q: %w", br.Region, err)
	}
	roomTypeID, err := tx.ResolveRoomType(ctx, hotelID, br.RoomType)
	if err != nil {
		return "", fmt.Errorf("resolve room type %q: %w", br.RoomType, err)
	}
	var ratePlanID *int64
	if br.RatePlan != "" {
		id, err := tx.ResolveRatePlan(ctx, br.RatePlan)
		if err != nil {
			return "", fmt.Errorf("resolve rate plan %q: %w", br.RatePlan, err)
		}
		ratePlanID = &id
	}

	b := domain.Booking{
		ChannelBookingID: br.BookingID,
		HotelID:          hotelID,
		RoomTypeID:       roomTypeID,
		ChannelID:        channelID,
		StatusID:         statusID,
		CountryID:        countryID,
		RegionID:         regionID,
		TravellerID:      travellerID,
		RatePlanID:       ratePlanID,
		BookedOn:         br.BookedOn,
		ArrivalDate:      br.ArrivalDate,
		DepartureDate:    br.DepartureDate,
		CancellationDate: br.CancellationDate,
		GuestCount:       br.GuestCount,
		GrossAmount:      br.GrossAmount,
		RawJSON:          br.RawJSON,
	}
	if err := tx.UpsertBooking(ctx, b); err != nil {
		return "", fmt.Errorf("upsert booking %q: %w", br.BookingID, err)
	}
	return br.BookingID, nil
}

// invalidate drops read-side cache entries the batch may have changed.
func (s *ImportService) invalidate(ctx context.Context, bookingIDs []string) {
	_ = s.cache.Del(ctx, "hotels:summary")
	for _, id := range bookingIDs {
		_ = s.cache.Del(ctx, "booking:"+id)
	}
}
