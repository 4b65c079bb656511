package store

// SQL query constants organized by backend and entity.

// PostgreSQL offer queries.
const (
	pgInsertOffer = `
		INSERT INTO offers (id, title, price, permalink)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	pgSelectOfferTimestamp = `SELECT "timestamp" FROM offers WHERE id = $1`

	pgSelectOfferIDs = `SELECT id FROM offers`

	pgDeleteOffer = `DELETE FROM offers WHERE id = $1`

	pgGetOffer = `
		SELECT id, title, price, permalink, "timestamp"
		FROM offers
		WHERE id = $1`

	pgListOffers = `
		SELECT id, title, price, permalink, "timestamp"
		FROM offers
		ORDER BY "timestamp" DESC, id
		LIMIT $1 OFFSET $2`

	pgCountOffers = `SELECT count(*) FROM offers`
)

// PostgreSQL run queries.
const (
	pgInsertRun = `
		INSERT INTO runs (id, started_at, finished_at, status, fetched, new_offers, disappeared, error_text)
		VALUES (@id, @started_at, @finished_at, @status, @fetched, @new_offers, @disappeared, @error_text)`

	pgListRuns = `
		SELECT id, started_at, finished_at, status, fetched, new_offers, disappeared, error_text
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1`
)

// SQLite schema and queries. The offers table matches the layout the
// tracker has always used in offers.db.
const (
	sqliteSchema = `
		CREATE TABLE IF NOT EXISTS offers (
			id TEXT PRIMARY KEY,
			title TEXT,
			price REAL,
			permalink TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			status TEXT NOT NULL,
			fetched INTEGER NOT NULL DEFAULT 0,
			new_offers INTEGER NOT NULL DEFAULT 0,
			disappeared INTEGER NOT NULL DEFAULT 0,
			error_text TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at DESC);`

	sqliteInsertOffer = `
		INSERT OR IGNORE INTO offers (id, title, price, permalink)
		VALUES (?, ?, ?, ?)`

	sqliteSelectOfferTimestamp = `SELECT timestamp FROM offers WHERE id = ?`

	sqliteSelectOfferIDs = `SELECT id FROM offers`

	sqliteDeleteOffer = `DELETE FROM offers WHERE id = ?`

	sqliteGetOffer = `
		SELECT id, COALESCE(title, ''), COALESCE(price, 0), COALESCE(permalink, ''), timestamp
		FROM offers
		WHERE id = ?`

	sqliteListOffers = `
		SELECT id, COALESCE(title, ''), COALESCE(price, 0), COALESCE(permalink, ''), timestamp
		FROM offers
		ORDER BY timestamp DESC, id
		LIMIT ? OFFSET ?`

	sqliteCountOffers = `SELECT count(*) FROM offers`

	sqliteInsertRun = `
		INSERT INTO runs (id, started_at, finished_at, status, fetched, new_offers, disappeared, error_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	sqliteListRuns = `
		SELECT id, started_at, finished_at, status, fetched, new_offers, disappeared, error_text
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`
)
