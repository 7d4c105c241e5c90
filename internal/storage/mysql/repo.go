package mysql

import (
	"context"
	"database/sql"

	"wandr_ingest/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func scanStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Begin opens one batch transaction. Every resolver and the booking upsert
// run through the returned handle, never through the pool directly.
func (r *Repo) Begin(ctx context.Context) (domain.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

type Tx struct{ tx *sql.Tx }

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// findOrCreate is the shared resolver shape: exact natural-key lookup
// inside the transaction, else insert and capture the generated id.
func (t *Tx) findOrCreate(ctx context.Context, findSQL string, findArgs []any, insertSQL string, insertArgs []any) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, findSQL, findArgs...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := t.tx.ExecContext(ctx, insertSQL, insertArgs...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (t *Tx) ResolveHotel(ctx context.Context, name string) (int64, error) {
	return t.findOrCreate(ctx, findHotelSQL, []any{name}, insertHotelSQL, []any{name})
}

func (t *Tx) ResolveTraveller(ctx context.Context, tr domain.Traveller) (int64, error) {
	return t.findOrCreate(ctx,
		findTravellerSQL, []any{tr.Email, tr.Mobile},
		insertTravellerSQL, []any{tr.Name, tr.Email, tr.Mobile, tr.Gender, valStr(tr.DateOfBirth), string(tr.RawJSON)},
	)
}

func (t *Tx) ResolveStatus(ctx context.Context, name string) (int64, error) {
	return t.findOrCreate(ctx, findStatusSQL, []any{name}, insertStatusSQL, []any{name})
}

func (t *Tx) ResolveChannel(ctx context.Context, name string) (int64, error) {
	return t.findOrCreate(ctx, findChannelSQL, []any{name}, insertChannelSQL, []any{name})
}

func (t *Tx) ResolveCountry(ctx context.Context, name string) (int64, error) {
	return t.findOrCreate(ctx, findCountrySQL, []any{name}, insertCountrySQL, []any{name})
}

func (t *Tx) ResolveRegion(ctx context.Context, countryID int64, name string) (int64, error) {
	return t.findOrCreate(ctx, findRegionSQL, []any{countryID, name}, insertRegionSQL, []any{countryID, name})
}

func (t *Tx) ResolveRatePlan(ctx context.Context, name string) (int64, error) {
	return t.findOrCreate(ctx, findRatePlanSQL, []any{name}, insertRatePlanSQL, []any{name})
}

func (t *Tx) ResolveRoomType(ctx context.Context, hotelID int64, name string) (int64, error) {
	return t.findOrCreate(ctx, findRoomTypeSQL, []any{hotelID, name}, insertRoomTypeSQL, []any{hotelID, name})
}

func (t *Tx) UpsertBooking(ctx context.Context, b domain.Booking) error {
	var ratePlanID any
	if b.RatePlanID != nil {
		ratePlanID = *b.RatePlanID
	}
	_, err := t.tx.ExecContext(ctx, upsertBookingSQL,
		b.HotelID,
		b.RoomTypeID,
		b.ChannelID,
		b.ChannelBookingID,
		valStr(b.BookedOn),
		valStr(b.ArrivalDate),
		valStr(b.DepartureDate),
		valStr(b.CancellationDate),
		b.GuestCount,
		ratePlanID,
		b.GrossAmount,
		b.StatusID,
		b.CountryID,
		b.RegionID,
		b.TravellerID,
		string(b.RawJSON),
	)
	return err
}

// ---- read side (pool, not transaction) ----

func (r *Repo) GetBooking(ctx context.Context, channelBookingID string) (domain.BookingView, error) {
	row := r.db.QueryRowContext(ctx, getBookingSQL, channelBookingID)

	var bv domain.BookingView
	var ratePlan sql.NullString
	var bookedOn, arrival, departure, cancellation sql.NullString
	if err := row.Scan(
		&bv.ChannelBookingID,
		&bv.Hotel,
		&bv.RoomType,
		&bv.Channel,
		&bv.Status,
		&ratePlan,
		&bv.Traveller,
		&bv.Country,
		&bv.Region,
		&bookedOn,
		&arrival,
		&departure,
		&cancellation,
		&bv.GuestCount,
		&bv.GrossAmount,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.BookingView{}, domain.ErrNotFound
		}
		return domain.BookingView{}, err
	}

	bv.RatePlan = scanStr(ratePlan)
	bv.BookedOn = scanStr(bookedOn)
	bv.ArrivalDate = scanStr(arrival)
	bv.DepartureDate = scanStr(departure)
	bv.CancellationDate = scanStr(cancellation)
	return bv, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.HotelSummary, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelSummary
	for rows.Next() {
		var h domain.HotelSummary
		if err := rows.Scan(&h.ID, &h.Name, &h.InventoryCount, &h.BookingCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
