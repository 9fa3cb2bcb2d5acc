package service

import (
	"context"
	"strings"
	"time"

	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"github.com/ufukozendev/noobgg-sub002/pkg/rowversion"
	"gorm.io/datatypes"
)

// LobbyStore is the persistence surface of LobbyService
type LobbyStore interface {
	VersionedStore[model.Lobby]
	List(ctx context.Context, q repository.ListQuery) ([]model.Lobby, int64, error)
	CreateWithOwner(ctx context.Context, lobby *model.Lobby, joinedAt time.Time) error
	DeleteWithMembers(ctx context.Context, lobbyID uint) error
	AddMember(ctx context.Context, lobbyID uint, userKey string, joinedAt time.Time) (*model.LobbyMember, error)
	RemoveMember(ctx context.Context, lobbyID uint, userKey string) error
	ListMembers(ctx context.Context, lobbyID uint, page pagination.Request) ([]model.LobbyMember, int64, error)
	CountMembers(ctx context.Context, ids []uint) (map[uint]int64, error)
}

var (
	errOwnerCannotLeave = apperrors.WithMessage(apperrors.ErrForbidden, "the owner cannot leave the lobby, delete it instead")
	errTeamSize         = apperrors.WithMessage(apperrors.ErrInvalidInput, "maxTeamSize must be greater than or equal to minTeamSize")
	errBelowMembers     = apperrors.WithMessage(apperrors.ErrInvalidInput, "maxTeamSize cannot be lower than the current member count")
)

type LobbyService struct {
	store  LobbyStore
	policy rowversion.Policy
	now    func() time.Time
}

func NewLobbyService(store LobbyStore, policy rowversion.Policy) *LobbyService {
	return &LobbyService{store: store, policy: policy, now: time.Now}
}

func (s *LobbyService) List(ctx context.Context, params ListParams) (pagination.Response[dto.LobbyResponse], error) {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.List")

	lobbies, total, err := s.store.List(ctx, repository.ListQuery{
		Page:   params.Page,
		Search: params.Search,
		Scopes: params.Scopes,
	})
	if err != nil {
		return pagination.Response[dto.LobbyResponse]{}, mapStoreError(err)
	}

	ids := make([]uint, 0, len(lobbies))
	for i := range lobbies {
		ids = append(ids, lobbies[i].ID)
	}
	counts, err := s.store.CountMembers(ctx, ids)
	if err != nil {
		return pagination.Response[dto.LobbyResponse]{}, mapStoreError(err)
	}

	out := make([]dto.LobbyResponse, 0, len(lobbies))
	for i := range lobbies {
		out = append(out, ToLobbyResponse(&lobbies[i], counts[lobbies[i].ID]))
	}
	return pagination.BuildResponse(out, total, params.Page), nil
}

func (s *LobbyService) Get(ctx context.Context, id uint) (*dto.LobbyResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.Get")

	lobby, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return s.withCount(ctx, lobby)
}

// Create stores a lobby owned by the caller; the owner joins it immediately
func (s *LobbyService) Create(ctx context.Context, ownerKey string, req *dto.CreateLobbyRequest) (*dto.LobbyResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.Create")

	if req.MaxTeamSize < req.MinTeamSize {
		return nil, errTeamSize
	}

	lobby := &model.Lobby{
		GameID:      req.GameID,
		Region:      strings.TrimSpace(req.Region),
		Mode:        strings.TrimSpace(req.Mode),
		MinTeamSize: req.MinTeamSize,
		MaxTeamSize: req.MaxTeamSize,
		IsPrivate:   req.IsPrivate,
		Note:        req.Note,
		OwnerKey:    ownerKey,
		Tags:        datatypes.JSONSlice[string](normalizeTags(req.Tags)),
		RowVersion:  rowversion.Initial,
	}
	if err := s.store.CreateWithOwner(ctx, lobby, s.now().UTC()); err != nil {
		return nil, mapStoreError(err)
	}

	logger.InfoWithContext(ctx, "Lobby created").
		Uint("lobby_id", lobby.ID).
		Uint("game_id", lobby.GameID).
		String("region", lobby.Region).
		Log()

	resp := ToLobbyResponse(lobby, 1)
	return &resp, nil
}

// Update applies a partial update guarded by the lobby's row version
func (s *LobbyService) Update(ctx context.Context, userKey string, id uint, req *dto.UpdateLobbyRequest) (*dto.LobbyResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.Update")

	lobby, err := updateVersioned[model.Lobby](ctx, "lobbies", s.store, s.policy, id, req.RowVersion, func(existing *model.Lobby) (map[string]interface{}, error) {
		if existing.OwnerKey != userKey {
			return nil, apperrors.ErrForbidden
		}
		return lobbyUpdates(existing, req)
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Lobby updated").
		Uint("lobby_id", id).
		String("row_version", lobby.RowVersion).
		Log()
	return s.withCount(ctx, lobby)
}

func lobbyUpdates(existing *model.Lobby, req *dto.UpdateLobbyRequest) (map[string]interface{}, error) {
	minSize, maxSize := existing.MinTeamSize, existing.MaxTeamSize
	if req.MinTeamSize != nil {
		minSize = *req.MinTeamSize
	}
	if req.MaxTeamSize != nil {
		maxSize = *req.MaxTeamSize
	}
	if maxSize < minSize {
		return nil, errTeamSize
	}

	u := updates{}
	u.trimmed("region", req.Region)
	u.trimmed("mode", req.Mode)
	setField(u, "min_team_size", req.MinTeamSize)
	setField(u, "max_team_size", req.MaxTeamSize)
	setField(u, "is_private", req.IsPrivate)
	u.set("note", req.Note)
	if req.Tags != nil {
		u["tags"] = datatypes.JSONSlice[string](normalizeTags(*req.Tags))
	}
	return u, nil
}

// Delete removes the lobby and its memberships; owner only
func (s *LobbyService) Delete(ctx context.Context, userKey string, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.Delete")

	lobby, err := s.store.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if lobby.OwnerKey != userKey {
		return apperrors.ErrForbidden
	}
	if err := s.store.DeleteWithMembers(ctx, id); err != nil {
		return mapStoreError(err)
	}

	logger.InfoWithContext(ctx, "Lobby deleted").Uint("lobby_id", id).Log()
	return nil
}

func (s *LobbyService) Join(ctx context.Context, userKey string, id uint) (*dto.LobbyMemberResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.Join")

	member, err := s.store.AddMember(ctx, id, userKey, s.now().UTC())
	if err != nil {
		logger.InfoWithContext(ctx, "Join rejected").Uint("lobby_id", id).Err(err).Log()
		return nil, mapStoreError(err)
	}

	resp := ToLobbyMemberResponse(member)
	return &resp, nil
}

func (s *LobbyService) Leave(ctx context.Context, userKey string, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.Leave")

	lobby, err := s.store.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}
	if lobby.OwnerKey == userKey {
		return errOwnerCannotLeave
	}
	if err := s.store.RemoveMember(ctx, id, userKey); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (s *LobbyService) Members(ctx context.Context, id uint, page pagination.Request) (pagination.Response[dto.LobbyMemberResponse], error) {
	ctx = ctxutil.WithOperation(ctx, "service", "lobbies.Members")

	if _, err := s.store.FindByID(ctx, id); err != nil {
		return pagination.Response[dto.LobbyMemberResponse]{}, mapStoreError(err)
	}

	members, total, err := s.store.ListMembers(ctx, id, page)
	if err != nil {
		return pagination.Response[dto.LobbyMemberResponse]{}, mapStoreError(err)
	}

	out := make([]dto.LobbyMemberResponse, 0, len(members))
	for i := range members {
		out = append(out, ToLobbyMemberResponse(&members[i]))
	}
	return pagination.BuildResponse(out, total, page), nil
}

func (s *LobbyService) withCount(ctx context.Context, lobby *model.Lobby) (*dto.LobbyResponse, error) {
	counts, err := s.store.CountMembers(ctx, []uint{lobby.ID})
	if err != nil {
		return nil, mapStoreError(err)
	}
	resp := ToLobbyResponse(lobby, counts[lobby.ID])
	return &resp, nil
}

func ToLobbyResponse(l *model.Lobby, memberCount int64) dto.LobbyResponse {
	tags := []string(l.Tags)
	if tags == nil {
		tags = []string{}
	}
	return dto.LobbyResponse{
		ID:          l.ID,
		GameID:      l.GameID,
		Region:      l.Region,
		Mode:        l.Mode,
		MinTeamSize: l.MinTeamSize,
		MaxTeamSize: l.MaxTeamSize,
		IsPrivate:   l.IsPrivate,
		Note:        l.Note,
		OwnerID:     l.OwnerKey,
		Tags:        tags,
		MemberCount: memberCount,
		RowVersion:  l.RowVersion,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func ToLobbyMemberResponse(m *model.LobbyMember) dto.LobbyMemberResponse {
	return dto.LobbyMemberResponse{
		LobbyID:  m.LobbyID,
		UserID:   m.UserKey,
		JoinedAt: m.JoinedAt,
	}
}

// normalizeTags trims, lowercases and de-duplicates tags keeping their order
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
