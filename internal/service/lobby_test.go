package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/pkg/metrics"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"github.com/ufukozendev/noobgg-sub002/pkg/rowversion"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newLobby(t *testing.T, svc *LobbyService, owner string, maxSize int) *dto.LobbyResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), owner, &dto.CreateLobbyRequest{
		GameID:      1,
		Region:      " EU ",
		Mode:        "ranked",
		MinTeamSize: 1,
		MaxTeamSize: maxSize,
		Tags:        []string{"Chill", "chill", " mic "},
	})
	require.NoError(t, err)
	return resp
}

func TestLobbyService_Create(t *testing.T) {
	svc := NewLobbyService(newFakeLobbyStore(), rowversion.Policy{})

	resp := newLobby(t, svc, "owner", 5)

	assert.Equal(t, "EU", resp.Region)
	assert.Equal(t, "owner", resp.OwnerID)
	assert.Equal(t, rowversion.Initial, resp.RowVersion)
	assert.Equal(t, int64(1), resp.MemberCount)
	assert.Equal(t, []string{"chill", "mic"}, resp.Tags)
}

func TestLobbyService_CreateRejectsInvertedTeamSize(t *testing.T) {
	svc := NewLobbyService(newFakeLobbyStore(), rowversion.Policy{})

	_, err := svc.Create(context.Background(), "owner", &dto.CreateLobbyRequest{
		GameID: 1, Region: "EU", Mode: "ranked", MinTeamSize: 5, MaxTeamSize: 2,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestLobbyService_UpdateVersion(t *testing.T) {
	tests := []struct {
		name        string
		supplied    *string
		policy      rowversion.Policy
		wantErr     error
		wantVersion string
	}{
		{name: "matching version advances", supplied: strPtr("0"), wantVersion: "1"},
		{name: "stale version conflicts", supplied: strPtr("7"), wantErr: apperrors.ErrVersionConflict},
		{name: "leading zero is a different token", supplied: strPtr("00"), wantErr: apperrors.ErrVersionConflict},
		{name: "absent version is unconditional", supplied: nil, wantVersion: "1"},
		{name: "blank version is a stale token", supplied: strPtr(""), wantErr: apperrors.ErrVersionConflict},
		{name: "absent version rejected when required", supplied: nil, policy: rowversion.Policy{Required: true}, wantErr: apperrors.ErrVersionRequired},
		{name: "required and supplied", supplied: strPtr("0"), policy: rowversion.Policy{Required: true}, wantVersion: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeLobbyStore()
			svc := NewLobbyService(store, tt.policy)
			created := newLobby(t, svc, "owner", 5)

			resp, err := svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{
				Mode:       strPtr("casual"),
				RowVersion: tt.supplied,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.writes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, resp.RowVersion)
			require.Len(t, store.writes, 1)
			assert.Equal(t, "casual", store.writes[0]["mode"])
		})
	}
}

func TestLobbyService_UpdateConflictIsCounted(t *testing.T) {
	svc := NewLobbyService(newFakeLobbyStore(), rowversion.Policy{})
	created := newLobby(t, svc, "owner", 5)
	before := testutil.ToFloat64(metrics.VersionConflicts.WithLabelValues("lobbies"))

	_, err := svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{RowVersion: strPtr("41")})

	assert.ErrorIs(t, err, apperrors.ErrVersionConflict)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.VersionConflicts.WithLabelValues("lobbies")))
}

func TestLobbyService_SecondWriterWithSameVersionConflicts(t *testing.T) {
	store := newFakeLobbyStore()
	svc := NewLobbyService(store, rowversion.Policy{})
	created := newLobby(t, svc, "owner", 5)

	first, err := svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{Note: strPtr("a"), RowVersion: strPtr(created.RowVersion)})
	require.NoError(t, err)
	assert.NotEqual(t, created.RowVersion, first.RowVersion)

	_, err = svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{Note: strPtr("b"), RowVersion: strPtr(created.RowVersion)})
	assert.ErrorIs(t, err, apperrors.ErrVersionConflict)
	assert.Len(t, store.writes, 1)
}

func TestLobbyService_LostRace(t *testing.T) {
	t.Run("supplied version is not retried", func(t *testing.T) {
		store := newFakeLobbyStore()
		svc := NewLobbyService(store, rowversion.Policy{})
		created := newLobby(t, svc, "owner", 5)
		store.lose = 1

		_, err := svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{RowVersion: strPtr("0")})
		assert.ErrorIs(t, err, apperrors.ErrVersionConflict)
		assert.Empty(t, store.writes)
	})

	t.Run("unconditional update re-reads", func(t *testing.T) {
		store := newFakeLobbyStore()
		svc := NewLobbyService(store, rowversion.Policy{})
		created := newLobby(t, svc, "owner", 5)
		store.lose = 2

		resp, err := svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{Note: strPtr("x")})
		require.NoError(t, err)
		assert.Len(t, store.writes, 1)
		assert.NotEqual(t, rowversion.Initial, resp.RowVersion)
	})

	t.Run("unconditional update gives up", func(t *testing.T) {
		store := newFakeLobbyStore()
		svc := NewLobbyService(store, rowversion.Policy{})
		created := newLobby(t, svc, "owner", 5)
		store.lose = 10

		_, err := svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{Note: strPtr("x")})
		assert.ErrorIs(t, err, apperrors.ErrVersionConflict)
		assert.Empty(t, store.writes)
	})
}

func TestLobbyService_UpdateChecks(t *testing.T) {
	store := newFakeLobbyStore()
	svc := NewLobbyService(store, rowversion.Policy{})
	created := newLobby(t, svc, "owner", 5)
	_, err := svc.Join(context.Background(), "u2", created.ID)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), "u3", created.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "intruder", created.ID, &dto.UpdateLobbyRequest{Mode: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{MinTeamSize: intPtr(6)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Update(context.Background(), "owner", created.ID, &dto.UpdateLobbyRequest{MaxTeamSize: intPtr(2)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Update(context.Background(), "owner", 999, &dto.UpdateLobbyRequest{Mode: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.Empty(t, store.writes)
}

func TestLobbyService_ShrinkRacesWithJoin(t *testing.T) {
	store := newFakeLobbyStore()
	svc := NewLobbyService(store, rowversion.Policy{})
	created := newLobby(t, svc, "owner", 3)
	ctx := context.Background()
	_, err := svc.Join(ctx, "u2", created.ID)
	require.NoError(t, err)

	// two members when the update reads the lobby, three when it writes
	store.beforeWrite = func() {
		_, err := svc.Join(ctx, "u3", created.ID)
		require.NoError(t, err)
	}

	_, err = svc.Update(ctx, "owner", created.ID, &dto.UpdateLobbyRequest{
		MaxTeamSize: intPtr(2),
		RowVersion:  strPtr(created.RowVersion),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Empty(t, store.writes)

	store.beforeWrite = nil
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.MaxTeamSize)
	assert.Equal(t, int64(3), got.MemberCount)
}

func TestLobbyService_Membership(t *testing.T) {
	store := newFakeLobbyStore()
	svc := NewLobbyService(store, rowversion.Policy{})
	created := newLobby(t, svc, "owner", 2)
	ctx := context.Background()

	member, err := svc.Join(ctx, "guest", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "guest", member.UserID)

	_, err = svc.Join(ctx, "guest", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	_, err = svc.Join(ctx, "late", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrLobbyFull)

	assert.ErrorIs(t, svc.Leave(ctx, "owner", created.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Leave(ctx, "stranger", created.ID), apperrors.ErrNotFound)
	require.NoError(t, svc.Leave(ctx, "guest", created.ID))

	page, err := svc.Members(ctx, created.ID, pagination.Normalize("", ""))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "owner", page.Data[0].UserID)
	assert.Equal(t, int64(1), page.Meta.TotalItems)

	_, err = svc.Members(ctx, 404, pagination.Normalize("", ""))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLobbyService_Delete(t *testing.T) {
	store := newFakeLobbyStore()
	svc := NewLobbyService(store, rowversion.Policy{})
	created := newLobby(t, svc, "owner", 2)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, "guest", created.ID), apperrors.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "owner", created.ID))

	_, err := svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, store.members[created.ID])
}

func TestLobbyService_ListIncludesMemberCounts(t *testing.T) {
	store := newFakeLobbyStore()
	svc := NewLobbyService(store, rowversion.Policy{})
	a := newLobby(t, svc, "a", 5)
	newLobby(t, svc, "b", 5)
	_, err := svc.Join(context.Background(), "guest", a.ID)
	require.NoError(t, err)

	page, err := svc.List(context.Background(), ListParams{Page: pagination.Normalize("1", "10")})
	require.NoError(t, err)

	require.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Data[0].MemberCount)
	assert.Equal(t, int64(1), page.Data[1].MemberCount)
	assert.Equal(t, 1, page.Meta.TotalPages)
}
