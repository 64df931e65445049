package storage

const schema = `
-- The 'cards' table mirrors the deck file. Cards are keyed by content hash.
CREATE TABLE IF NOT EXISTS cards (
    hash TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    position INTEGER NOT NULL, -- 1-based line order in the deck file
    first_seen DATETIME NOT NULL
);

-- The 'results' table mirrors the result log. seq is the entry's 1-based
-- position in the log. line_hash fingerprints the log line so hand edits
-- to already mirrored entries are detected.
CREATE TABLE IF NOT EXISTS results (
    seq INTEGER PRIMARY KEY,
    line_hash TEXT NOT NULL DEFAULT '',
    recorded_at DATETIME NOT NULL,
    outcome TEXT NOT NULL CHECK (outcome IN ('correct', 'incorrect')),
    card_hash TEXT NOT NULL,
    category TEXT NOT NULL,
    front TEXT NOT NULL,
    back TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS results_card_hash ON results(card_hash);

-- The 'exports' table records every reconciliation run.
CREATE TABLE IF NOT EXISTS exports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    deck_path TEXT NOT NULL,
    results_path TEXT NOT NULL,
    exported_at DATETIME NOT NULL
);
`
