package postgres

const schemaDDL = `
CREATE TABLE IF NOT EXISTS posts (
    id          BIGINT PRIMARY KEY,
    author      TEXT,
    author_link TEXT,
    text        TEXT NOT NULL DEFAULT 'N/A',
    date        TIMESTAMPTZ,
    likes       INTEGER NOT NULL DEFAULT 0,
    comments    INTEGER NOT NULL DEFAULT 0,
    shares      INTEGER NOT NULL DEFAULT 0,
    followers   INTEGER NOT NULL DEFAULT 0,
    theme       TEXT NOT NULL DEFAULT '',
    loaded_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_posts_theme ON posts (theme);
CREATE INDEX IF NOT EXISTS idx_posts_date ON posts (date);

CREATE TABLE IF NOT EXISTS run_logs (
    date             TEXT PRIMARY KEY,
    status           TEXT NOT NULL,
    attempt_number   INTEGER NOT NULL,
    run_id           TEXT NOT NULL,
    failure_message  TEXT,
    failure_category TEXT,
    alert_sent       BOOLEAN NOT NULL DEFAULT FALSE,
    started_at       TIMESTAMPTZ NOT NULL,
    completed_at     TIMESTAMPTZ,
    updated_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_logs_status ON run_logs (status);
`
