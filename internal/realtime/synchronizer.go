package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
)

// Directory is the read side the synchronizer refetches from. Implemented
// by the team usecase.
type Directory interface {
	ListTeams(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error)
}

// Frame is one outbound websocket message.
type Frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Frame types pushed to clients.
const (
	FrameTeams         = "teams"
	FrameMembers       = "members"
	FrameChange        = "change"
	FrameNotice        = "notice"
	FramePresenceSync  = "presence.sync"
	FramePresenceJoin  = "presence.join"
	FramePresenceLeave = "presence.leave"
)

// Session is one connected client's server-side state mirror: the user's
// team list, the current team selection and the selected team's members.
// Local state is a cache of the store, re-derived on every relevant change
// event rather than patched, so overlapping events converge idempotently.
type Session struct {
	UserID uuid.UUID

	mu      sync.Mutex
	teams   []*entities.Team
	current uuid.UUID // zero when nothing is selected
	members []*entities.TeamMember
}

func NewSession(userID uuid.UUID) *Session {
	return &Session{UserID: userID}
}

// CurrentTeam returns the selected team id, or uuid.Nil.
func (s *Session) CurrentTeam() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Synchronizer keeps sessions consistent with the store by re-deriving
// their state from change events.
type Synchronizer struct {
	dir Directory
}

func NewSynchronizer(dir Directory) *Synchronizer {
	return &Synchronizer{dir: dir}
}

// Bootstrap performs the initial full fetch for a fresh session and returns
// the frames to push: the team list and, when a team got selected, its
// member list.
func (y *Synchronizer) Bootstrap(ctx context.Context, sess *Session) ([]Frame, error) {
	return y.refreshTeams(ctx, sess, "")
}

// Select switches the session's current team. The team must appear in the
// session's team list; selecting uuid.Nil clears the selection.
func (y *Synchronizer) Select(ctx context.Context, sess *Session, teamID uuid.UUID) ([]Frame, error) {
	sess.mu.Lock()
	if teamID != uuid.Nil && !containsTeam(sess.teams, teamID) {
		sess.mu.Unlock()
		return nil, nil
	}
	sess.current = teamID
	sess.mu.Unlock()

	if teamID == uuid.Nil {
		return []Frame{{Type: FrameMembers, Payload: []*entities.TeamMember{}}}, nil
	}
	return y.refreshMembers(ctx, sess, teamID)
}

// Apply reacts to one change event and returns the frames to push to this
// session's client. Multiple event classes can fire for one logical action
// (a team delete also cascades membership deletes); every path re-derives
// the same final state.
func (y *Synchronizer) Apply(ctx context.Context, sess *Session, ev ChangeEvent) ([]Frame, error) {
	switch ev.Table {
	case TableTeamMembers:
		if ev.UserID == sess.UserID {
			// Own membership changed: full teams refetch + reselect.
			return y.refreshTeams(ctx, sess, "")
		}
		// Someone else's membership changed: refresh members of the
		// currently selected team only.
		if current := sess.CurrentTeam(); current != uuid.Nil && current == ev.TeamID {
			return y.refreshMembers(ctx, sess, current)
		}
		return nil, nil

	case TableTeams:
		if ev.Action != ActionDelete {
			if current := sess.CurrentTeam(); current != uuid.Nil && current == ev.TeamID {
				// Code or password regenerated on the selected team.
				return y.refreshTeams(ctx, sess, "")
			}
			return nil, nil
		}
		if current := sess.CurrentTeam(); current == ev.TeamID && current != uuid.Nil {
			return y.refreshTeams(ctx, sess, "your team was deleted")
		}
		// A team this user belongs to may have been deleted without being
		// selected; the cascading membership event covers the list refresh.
		return nil, nil
	}
	return nil, nil
}

// refreshTeams refetches the user's teams, re-applies the deterministic
// selection rule and returns the resulting frames. A non-empty notice is
// appended as a user-facing notification.
func (y *Synchronizer) refreshTeams(ctx context.Context, sess *Session, notice string) ([]Frame, error) {
	teams, err := y.dir.ListTeams(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.teams = teams
	// Keep the previous selection if it survived the refresh; otherwise
	// fall back to the most recently joined team, or nothing.
	if !containsTeam(teams, sess.current) {
		if len(teams) > 0 {
			sess.current = teams[0].ID
		} else {
			sess.current = uuid.Nil
		}
	}
	current := sess.current
	sess.mu.Unlock()

	frames := []Frame{{Type: FrameTeams, Payload: teamsPayload{Teams: teams, Current: current}}}

	if current != uuid.Nil {
		memberFrames, err := y.refreshMembers(ctx, sess, current)
		if err != nil {
			return nil, err
		}
		frames = append(frames, memberFrames...)
	} else {
		sess.mu.Lock()
		sess.members = nil
		sess.mu.Unlock()
		frames = append(frames, Frame{Type: FrameMembers, Payload: []*entities.TeamMember{}})
	}

	if notice != "" {
		frames = append(frames, Frame{Type: FrameNotice, Payload: noticePayload{Message: notice}})
	}
	return frames, nil
}

func (y *Synchronizer) refreshMembers(ctx context.Context, sess *Session, teamID uuid.UUID) ([]Frame, error) {
	members, err := y.dir.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	// A stale refetch for a team that is no longer selected is discarded;
	// the refetch for the new selection already ran or will run.
	if sess.current != teamID {
		sess.mu.Unlock()
		return nil, nil
	}
	sess.members = members
	sess.mu.Unlock()

	return []Frame{{Type: FrameMembers, Payload: members}}, nil
}

type teamsPayload struct {
	Teams   []*entities.Team `json:"teams"`
	Current uuid.UUID        `json:"current"`
}

type noticePayload struct {
	Message string `json:"message"`
}

func containsTeam(teams []*entities.Team, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	for _, t := range teams {
		if t.ID == id {
			return true
		}
	}
	return false
}
