package integration_test

import "testing"

// Catalog fixture shared by every suite. Ticketing state is created per test
// and wiped with resetTicketing between scenarios.
//
// Users: 1 customer Ana, 2 customer Ben, 3 usher, 4 admin.
// Rooms: 1 (seats A1-A5, B1 inactive), 2 (seats C1-C3).
// Showtimes: 1 starts in 48h, 2 already started, 3 starts in 90 minutes.
func seedCatalog(t testing.TB, app *TestApp) {
	t.Helper()

	execSQL(t, app,
		`INSERT INTO room_types (id, name, adult_price, child_price)
		 VALUES (1, 'Standard', 12.00, 9.00)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO rooms (id, name, room_type_id)
		 VALUES (1, 'Room 1', 1), (2, 'Room 2', 1)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO seats (id, room_id, code, active) VALUES
		 (1, 1, 'A1', true), (2, 1, 'A2', true), (3, 1, 'A3', true),
		 (4, 1, 'A4', true), (5, 1, 'A5', true), (6, 1, 'B1', false),
		 (7, 2, 'C1', true), (8, 2, 'C2', true), (9, 2, 'C3', true)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO movies (id, title, duration_minutes, active)
		 VALUES (1, 'Interstellar', 169, true), (2, 'Old Classic', 95, false)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO showtimes (id, movie_id, room_id, start_time, active) VALUES
		 (1, 1, 1, now() + interval '48 hours', true),
		 (2, 1, 1, now() - interval '1 hour', true),
		 (3, 1, 2, now() + interval '90 minutes', true)
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO users (id, first_name, last_name, email, role) VALUES
		 (1, 'Ana', 'Garcia', 'ana@example.com', 'customer'),
		 (2, 'Ben', 'Lopez', 'ben@example.com', 'customer'),
		 (3, 'Uma', 'Sher', 'usher@example.com', 'usher'),
		 (4, 'Ada', 'Min', 'admin@example.com', 'admin')
		 ON CONFLICT (id) DO NOTHING`,

		`SELECT setval('room_types_id_seq', 100)`,
		`SELECT setval('rooms_id_seq', 100)`,
		`SELECT setval('seats_id_seq', 100)`,
		`SELECT setval('movies_id_seq', 100)`,
		`SELECT setval('showtimes_id_seq', 100)`,
		`SELECT setval('users_id_seq', 100)`,
	)
}
