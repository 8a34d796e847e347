package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"team-hub.backend/internal/domain/entities"
	"team-hub.backend/internal/usecases"
)

func newSnapshotTestEnv() (*SnapshotHandler, *memberRepoStub) {
	members := newMemberRepoStub()
	u := usecases.NewSnapshotUsecase(newSnapshotRepoStub(), members)
	return NewSnapshotHandler(u), members
}

func snapshotRouterFor(h *SnapshotHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withUser(userID))
	r.PUT("/teams/:id/snapshots/:kind", h.UpsertSnapshot)
	r.GET("/teams/:id/snapshots/:kind/:userId", h.GetSnapshot)
	return r
}

func TestSnapshotHandler_UpsertAndFetch(t *testing.T) {
	h, members := newSnapshotTestEnv()
	teamID := uuid.New()
	owner := uuid.New()
	reader := uuid.New()
	seedMember(t, members, teamID, owner)
	seedMember(t, members, teamID, reader)

	ownerAPI := snapshotRouterFor(h, owner)
	readerAPI := snapshotRouterFor(h, reader)
	base := "/teams/" + teamID.String() + "/snapshots/chat"

	rec := doJSON(t, ownerAPI, http.MethodPut, base, gin.H{"state": gin.H{"draft": "hi"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Upsert replaces the whole blob.
	rec = doJSON(t, ownerAPI, http.MethodPut, base, gin.H{"state": gin.H{"draft": "bye"}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, readerAPI, http.MethodGet, base+"/"+owner.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched struct {
		Snapshot *entities.Snapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.NotNil(t, fetched.Snapshot)
	require.JSONEq(t, `{"draft":"bye"}`, string(fetched.Snapshot.State))
}

func TestSnapshotHandler_MissingIsNull(t *testing.T) {
	h, members := newSnapshotTestEnv()
	teamID := uuid.New()
	owner := uuid.New()
	reader := uuid.New()
	seedMember(t, members, teamID, owner)
	seedMember(t, members, teamID, reader)
	api := snapshotRouterFor(h, reader)

	rec := doJSON(t, api, http.MethodGet, "/teams/"+teamID.String()+"/snapshots/todo/"+owner.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched struct {
		Snapshot *entities.Snapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Nil(t, fetched.Snapshot)
}

func TestSnapshotHandler_Validation(t *testing.T) {
	h, members := newSnapshotTestEnv()
	teamID := uuid.New()
	userID := uuid.New()
	seedMember(t, members, teamID, userID)
	api := snapshotRouterFor(h, userID)

	// Unknown kind.
	rec := doJSON(t, api, http.MethodPut, "/teams/"+teamID.String()+"/snapshots/notes", gin.H{"state": gin.H{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing state.
	rec = doJSON(t, api, http.MethodPut, "/teams/"+teamID.String()+"/snapshots/chat", gin.H{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshotHandler_RequiresSharedTeam(t *testing.T) {
	h, members := newSnapshotTestEnv()
	teamID := uuid.New()
	owner := uuid.New()
	seedMember(t, members, teamID, owner)
	outsider := snapshotRouterFor(h, uuid.New())

	rec := doJSON(t, outsider, http.MethodPut, "/teams/"+teamID.String()+"/snapshots/chat", gin.H{"state": gin.H{}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, outsider, http.MethodGet, "/teams/"+teamID.String()+"/snapshots/chat/"+owner.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
