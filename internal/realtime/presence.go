package realtime

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
)

// PresenceTracker holds the ephemeral per-team presence maps. Nothing here
// touches durable storage; a process restart loses all of it and clients
// re-sync on reconnect.
type PresenceTracker struct {
	mu    sync.RWMutex
	teams map[uuid.UUID]map[uuid.UUID]entities.PresenceRecord
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		teams: make(map[uuid.UUID]map[uuid.UUID]entities.PresenceRecord),
	}
}

// Track upserts the user's presence payload and returns the stored record
// with its update timestamp set.
func (t *PresenceTracker) Track(teamID, userID uuid.UUID, path string) entities.PresenceRecord {
	rec := entities.PresenceRecord{
		UserID:    userID,
		Path:      path,
		UpdatedAt: time.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.teams[teamID]; !ok {
		t.teams[teamID] = make(map[uuid.UUID]entities.PresenceRecord)
	}
	t.teams[teamID][userID] = rec
	return rec
}

// Leave removes the user's entry entirely.
func (t *PresenceTracker) Leave(teamID, userID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if users, ok := t.teams[teamID]; ok {
		delete(users, userID)
		if len(users) == 0 {
			delete(t.teams, teamID)
		}
	}
}

// Sync replaces the team's presence map with the given authoritative state.
// Malformed entries are dropped, not errored; presence is best-effort.
func (t *PresenceTracker) Sync(teamID uuid.UUID, entries []entities.PresenceRecord) {
	users := make(map[uuid.UUID]entities.PresenceRecord, len(entries))
	for _, e := range entries {
		if !e.WellFormed() {
			continue
		}
		users[e.UserID] = e
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(users) == 0 {
		delete(t.teams, teamID)
		return
	}
	t.teams[teamID] = users
}

// Snapshot returns the team's current presence entries, ordered by user id
// for deterministic output.
func (t *PresenceTracker) Snapshot(teamID uuid.UUID) []entities.PresenceRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users := t.teams[teamID]
	out := make([]entities.PresenceRecord, 0, len(users))
	for _, rec := range users {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out
}
