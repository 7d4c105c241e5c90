package mysql

// Reference dimensions are find-by-natural-key, else insert. The unique
// constraints in migrations/ are what make the duplicate-key paths safe
// against concurrent batches.

const findHotelSQL = `SELECT id FROM hotels WHERE name = ?`

// LAST_INSERT_ID(id) makes the duplicate-key path report the existing row's
// id, so a race between two batches still converges on one hotel.
const insertHotelSQL = `
INSERT INTO hotels (name, inventory_count)
VALUES (?, 1)
ON DUPLICATE KEY UPDATE
  inventory_count = inventory_count + 1,
  id = LAST_INSERT_ID(id)
`

const findTravellerSQL = `
SELECT id FROM travellers
WHERE (email <> '' AND email = ?) OR (mobile <> '' AND mobile = ?)
LIMIT 1
`

// email/mobile are the match keys and are never overwritten on conflict.
const insertTravellerSQL = `
INSERT INTO travellers (name, email, mobile, gender, dob, json_data)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name      = VALUES(name),
  gender    = VALUES(gender),
  dob       = VALUES(dob),
  json_data = VALUES(json_data),
  id        = LAST_INSERT_ID(id)
`

const (
	findStatusSQL    = `SELECT id FROM statuses WHERE name = ?`
	insertStatusSQL  = `INSERT INTO statuses (name) VALUES (?)`
	findChannelSQL   = `SELECT id FROM channels WHERE name = ?`
	insertChannelSQL = `INSERT INTO channels (name) VALUES (?)`
	findCountrySQL   = `SELECT id FROM countries WHERE name = ?`
	insertCountrySQL = `INSERT INTO countries (name) VALUES (?)`

	findRegionSQL   = `SELECT id FROM regions WHERE country_id = ? AND name = ?`
	insertRegionSQL = `INSERT INTO regions (country_id, name) VALUES (?, ?)`

	findRatePlanSQL   = `SELECT id FROM rate_plans WHERE name = ?`
	insertRatePlanSQL = `INSERT INTO rate_plans (name) VALUES (?)`

	findRoomTypeSQL   = `SELECT id FROM room_types WHERE hotel_id = ? AND name = ?`
	insertRoomTypeSQL = `INSERT INTO room_types (hotel_id, name) VALUES (?, ?)`
)

const upsertBookingSQL = `
INSERT INTO bookings
  (hotel_id, room_type_id, channel_id, channel_booking_id, booked_on,
   arrival_date, departure_date, cancellation_no_show_date, guest_count,
   rate_plan_id, gross_amount, status_id, country_id, region_id,
   traveller_id, json_data)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id                  = VALUES(hotel_id),
  room_type_id              = VALUES(room_type_id),
  channel_id                = VALUES(channel_id),
  booked_on                 = VALUES(booked_on),
  arrival_date              = VALUES(arrival_date),
  departure_date            = VALUES(departure_date),
  cancellation_no_show_date = VALUES(cancellation_no_show_date),
  guest_count               = VALUES(guest_count),
  rate_plan_id              = VALUES(rate_plan_id),
  gross_amount              = VALUES(gross_amount),
  status_id                 = VALUES(status_id),
  country_id                = VALUES(country_id),
  region_id                 = VALUES(region_id),
  traveller_id              = VALUES(traveller_id),
  json_data                 = VALUES(json_data)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getBookingSQL = `
SELECT
  b.channel_booking_id,
  h.name,
  rt.name,
  c.name,
  s.name,
  rp.name,
  t.name,
  co.name,
  r.name,
  DATE_FORMAT(b.booked_on, '%Y-%m-%d'),
  DATE_FORMAT(b.arrival_date, '%Y-%m-%d'),
  DATE_FORMAT(b.departure_date, '%Y-%m-%d'),
  DATE_FORMAT(b.cancellation_no_show_date, '%Y-%m-%d'),
  b.guest_count,
  b.gross_amount
FROM bookings b
JOIN hotels h      ON h.id = b.hotel_id
JOIN room_types rt ON rt.id = b.room_type_id
JOIN channels c    ON c.id = b.channel_id
JOIN statuses s    ON s.id = b.status_id
JOIN countries co  ON co.id = b.country_id
JOIN regions r     ON r.id = b.region_id
JOIN travellers t  ON t.id = b.traveller_id
LEFT JOIN rate_plans rp ON rp.id = b.rate_plan_id
WHERE b.channel_booking_id = ?
`

const listHotelsSQL = `
SELECT h.id, h.name, h.inventory_count, COUNT(b.id)
FROM hotels h
LEFT JOIN bookings b ON b.hotel_id = h.id
GROUP BY h.id, h.name, h.inventory_count
ORDER BY h.name
`
