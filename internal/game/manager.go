package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nineball/backend/internal/config"
	"github.com/nineball/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "nineball:leaderboard"

// SessionManager owns all live sessions and their persistence.
type SessionManager struct {
	sessions map[string]*Session // keyed by session ID
	db       *sqlx.DB
	rdb      *redis.Client
	config   *config.Config
	mu       sync.RWMutex
}

// Manager is the global session manager instance.
var Manager *SessionManager

// InitializeManager initializes the global session manager with Redis,
// DB and config, and starts the background expiry checker.
func InitializeManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = NewSessionManager(db, rdb, cfg)
	go Manager.StartExpiryChecker(context.Background())
}

// NewSessionManager creates a session manager.
func NewSessionManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		db:       db,
		rdb:      rdb,
		config:   cfg,
	}
}

// generateToken generates a secure random hex token.
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// CreateSession starts a new simulation session and its frame loop.
func (sm *SessionManager) CreateSession(playerName string) *Session {
	id := "s_" + generateToken(8)
	session := NewSession(id, generateToken(16), playerName)

	sm.mu.Lock()
	sm.sessions[id] = session
	sm.mu.Unlock()

	go session.Run(context.Background())

	log.Printf("[MANAGER] Session %s created for %q", id, playerName)
	return session
}

// GetSession looks up a live session by ID.
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return session, nil
}

// SessionCount returns the number of live sessions.
func (sm *SessionManager) SessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// StartExpiryChecker closes sessions that have seen no input for longer
// than the configured expiry.
func (sm *SessionManager) StartExpiryChecker(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expiry := time.Duration(sm.config.SessionExpiryMinutes) * time.Minute
			sm.mu.RLock()
			var expired []*Session
			for _, s := range sm.sessions {
				if s.IdleSince() > expiry {
					expired = append(expired, s)
				}
			}
			sm.mu.RUnlock()

			for _, s := range expired {
				log.Printf("[MANAGER] Session %s expired after %v idle", s.ID, s.IdleSince().Round(time.Second))
				s.Close()
			}
		}
	}
}

// FinishSession records a finished session and drops it from the
// registry. Called from the session's own loop goroutine, so reading
// the simulation is safe.
func (sm *SessionManager) FinishSession(s *Session) {
	sm.mu.Lock()
	delete(sm.sessions, s.ID)
	sm.mu.Unlock()

	ctx := context.Background()

	if sm.rdb != nil {
		if err := sm.rdb.Del(ctx, sessionKey(s.ID)).Err(); err != nil {
			log.Printf("[REDIS] Failed to drop session %s snapshot: %v", s.ID, err)
		}
		if s.PlayerName != "" {
			err := sm.rdb.ZAddGT(ctx, leaderboardKey, redis.Z{
				Score:  float64(s.sim.Score),
				Member: s.PlayerName,
			}).Err()
			if err != nil {
				log.Printf("[REDIS] Failed to update leaderboard for %s: %v", s.PlayerName, err)
			}
		}
	}

	if sm.db != nil {
		_, err := sm.db.Exec(
			`INSERT INTO sessions (session_id, player_name, score, balls_pocketed, scratches, racks_cleared, started_at, ended_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`,
			s.ID, s.PlayerName, s.sim.Score, s.sim.BallsPocketed, s.sim.Scratches, s.sim.RacksCleared, s.CreatedAt,
		)
		if err != nil {
			log.Printf("[DB] Failed to record session %s: %v", s.ID, err)
		}
	}
}

func sessionKey(id string) string {
	return "session:" + id + ":state"
}

// saveSessionToRedis stores a live snapshot so the render surface can
// recover state after a reconnect.
func (sm *SessionManager) saveSessionToRedis(s *Session) {
	if sm.rdb == nil {
		return
	}

	snapshot := map[string]interface{}{
		"id":          s.ID,
		"token":       s.Token,
		"player_name": s.PlayerName,
		"created_at":  s.CreatedAt,
		"frame":       json.RawMessage(s.LastFrame()),
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[REDIS] Failed to marshal session %s snapshot: %v", s.ID, err)
		return
	}

	if err := sm.rdb.SetEx(context.Background(), sessionKey(s.ID), data, time.Hour).Err(); err != nil {
		log.Printf("[REDIS] Failed to save session %s snapshot: %v", s.ID, err)
	}
}

// TopScores reads the leaderboard from Redis, best first.
func (sm *SessionManager) TopScores(ctx context.Context, limit int) ([]models.HighScore, error) {
	if sm.rdb == nil {
		return nil, errors.New("redis is not configured")
	}

	entries, err := sm.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]models.HighScore, 0, len(entries))
	for i, e := range entries {
		name, _ := e.Member.(string)
		scores = append(scores, models.HighScore{
			Rank:       i + 1,
			PlayerName: name,
			Score:      int(e.Score),
		})
	}
	return scores, nil
}

// RecentSessions returns the most recently finished sessions.
func (sm *SessionManager) RecentSessions(limit int) ([]models.SessionRecord, error) {
	if sm.db == nil {
		return nil, errors.New("database is not configured")
	}

	var records []models.SessionRecord
	err := sm.db.Select(&records,
		`SELECT id, session_id, player_name, score, balls_pocketed, scratches, racks_cleared, started_at, ended_at
		 FROM sessions ORDER BY ended_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return records, nil
}
