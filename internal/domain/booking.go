package domain

// Record is one raw row of an export file: normalized header -> raw value.
type Record map[string]string

// BookingRecord is the canonical intermediate form of one raw row after
// header probing, alias resolution and date normalization, but before any
// foreign key has been resolved. Dates are canonical "2006-01-02" strings;
// nil means the source had no usable value.
type BookingRecord struct {
	BookingID   string
	Synthesized bool // true when BookingID was generated, not read from the row

	TravellerName  string
	TravellerEmail string
	TravellerPhone string
	Gender         string
	DateOfBirth    *string

	HotelName string
	RoomType  string
	Channel   string
	Status    string
	RatePlan  string
	Country   string
	Region    string

	BookedOn         *string
	ArrivalDate      *string
	DepartureDate    *string
	CancellationDate *string

	GuestCount  int
	GrossAmount float64

	RawJSON []byte // original row preserved for audit
}

// Booking is the fully resolved fact, ready for upsert. Natural key is
// ChannelBookingID; everything else is overwritten on repeat sight.
type Booking struct {
	ChannelBookingID string
	HotelID          int64
	RoomTypeID       int64
	ChannelID        int64
	StatusID         int64
	CountryID        int64
	RegionID         int64
	TravellerID      int64
	RatePlanID       *int64
	BookedOn         *string
	ArrivalDate      *string
	DepartureDate    *string
	CancellationDate *string
	GuestCount       int
	GrossAmount      float64
	RawJSON          []byte
}

// Traveller is matched by non-empty email OR non-empty mobile; on conflict
// name/gender/dob/raw are overwritten, the match keys never are.
type Traveller struct {
	Name        string
	Email       string
	Mobile      string
	Gender      string
	DateOfBirth *string
	RawJSON     []byte
}

// ImportResult aggregates one batch run.
type ImportResult struct {
	ProcessedRows int
	SkippedRows   int
	Errors        []string
}

// Read models.

type HotelSummary struct {
	ID             int64
	Name           string
	InventoryCount int
	BookingCount   int
}

type BookingView struct {
	ChannelBookingID string
	Hotel            string
	RoomType         string
	Channel          string
	Status           string
	RatePlan         *string
	Traveller        string
	Country          string
	Region           string
	BookedOn         *string
	ArrivalDate      *string
	DepartureDate    *string
	CancellationDate *string
	GuestCount       int
	GrossAmount      float64
}
