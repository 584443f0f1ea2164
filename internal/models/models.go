package models

import "time"

// SessionRecord is a finished simulation session as stored in Postgres.
type SessionRecord struct {
	ID            int       `db:"id" json:"id"`
	SessionID     string    `db:"session_id" json:"session_id"`
	PlayerName    string    `db:"player_name" json:"player_name"`
	Score         int       `db:"score" json:"score"`
	BallsPocketed int       `db:"balls_pocketed" json:"balls_pocketed"`
	Scratches     int       `db:"scratches" json:"scratches"`
	RacksCleared  int       `db:"racks_cleared" json:"racks_cleared"`
	StartedAt     time.Time `db:"started_at" json:"started_at"`
	EndedAt       time.Time `db:"ended_at" json:"ended_at"`
}

// HighScore is one leaderboard entry from Redis.
type HighScore struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
}
