package db

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`, `
CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    deadline TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    is_completed BOOLEAN NOT NULL DEFAULT 0,
    completed_at TIMESTAMP,
    creator_id INTEGER NOT NULL REFERENCES users(id)
);
`, `
CREATE INDEX IF NOT EXISTS idx_todos_creator_id ON todos (creator_id);
`}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`, `
CREATE TABLE IF NOT EXISTS todos (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    deadline TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    is_completed BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at TIMESTAMPTZ,
    creator_id BIGINT NOT NULL REFERENCES users(id)
);
`, `
CREATE INDEX IF NOT EXISTS idx_todos_creator_id ON todos (creator_id);
`}
