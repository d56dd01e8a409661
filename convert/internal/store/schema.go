package store

// Schema contains the complete DDL for the conversion-run tables.
const Schema = `
-- Conversion runs: one row per processed manuscript
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    filename   TEXT NOT NULL,
    score      INTEGER NOT NULL,
    tier       TEXT NOT NULL,
    content    TEXT NOT NULL,              -- article content JSON
    config     TEXT NOT NULL,              -- journal config JSON
    xml        TEXT NOT NULL,              -- rendered JATS document
    report     TEXT NOT NULL,              -- QA report markdown
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);
`
