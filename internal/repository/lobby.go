package repository

import (
	"context"
	"time"

	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LobbyRepository adds membership operations on top of the generic CRUD
type LobbyRepository struct {
	*CRUDRepository[model.Lobby]
}

func NewLobbyRepository(db *gorm.DB) *LobbyRepository {
	return &LobbyRepository{
		CRUDRepository: NewCRUDRepository[model.Lobby](db, Options{
			Name: "lobbies",
			Sort: SortSpec{
				Columns:    withCommonSort(map[string]string{"region": "region", "mode": "mode", "maxTeamSize": "max_team_size"}),
				Default:    "created_at",
				DefaultAsc: false,
			},
			SearchColumns: []string{"region", "mode", "note"},
		}),
	}
}

// CreateWithOwner inserts the lobby and its owner's membership atomically
func (r *LobbyRepository) CreateWithOwner(ctx context.Context, lobby *model.Lobby, joinedAt time.Time) error {
	ctx = r.op(ctx, "CreateWithOwner")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(lobby).Error; err != nil {
			return err
		}
		return tx.Create(&model.LobbyMember{
			LobbyID:  lobby.ID,
			UserKey:  lobby.OwnerKey,
			JoinedAt: joinedAt,
		}).Error
	})
	if err != nil {
		err = MapPgError(err)
		logger.WarnWithContext(ctx, "Failed to create lobby").Err(err).Log()
		return err
	}
	return nil
}

// lockLobby reads the lobby row with FOR UPDATE so membership changes serialize per lobby
func lockLobby(tx *gorm.DB, lobbyID uint) (*model.Lobby, error) {
	var lobby model.Lobby
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lobby, lobbyID).Error
	if err != nil {
		return nil, MapPgError(err)
	}
	return &lobby, nil
}

// UpdateVersioned writes a lobby under the same row lock AddMember takes, so
// a lowered maxTeamSize is checked against the member count it will govern.
// It fails with ErrBelowMembers when the lobby already holds more members.
func (r *LobbyRepository) UpdateVersioned(ctx context.Context, id uint, expected, next string, updates map[string]interface{}) error {
	ctx = r.op(ctx, "UpdateVersioned")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lobby, err := lockLobby(tx, id)
		if err != nil {
			return err
		}
		if lobby.RowVersion != expected {
			return ErrVersionMismatch
		}

		if size, ok := updates["max_team_size"].(int); ok {
			var count int64
			if err := memberCount(tx, id).Count(&count).Error; err != nil {
				return err
			}
			if count > int64(size) {
				return ErrBelowMembers
			}
		}

		return tx.Model(&model.Lobby{}).
			Where("id = ? AND "+model.VersionColumn+" = ?", id, expected).
			Updates(versionedValues(updates, next)).Error
	})
	if err != nil {
		err = MapPgError(err)
		logger.InfoWithContext(ctx, "Lobby update rejected").
			Uint("lobby_id", id).
			String("expected_version", expected).
			Err(err).
			Log()
		return err
	}
	return nil
}

func memberCount(tx *gorm.DB, lobbyID uint) *gorm.DB {
	return tx.Model(&model.LobbyMember{}).Where("lobby_id = ?", lobbyID)
}

// AddMember joins userKey to the lobby. It fails with ErrCapacity when the
// lobby already holds MaxTeamSize members and ErrAlreadyExists on a double join.
func (r *LobbyRepository) AddMember(ctx context.Context, lobbyID uint, userKey string, joinedAt time.Time) (*model.LobbyMember, error) {
	ctx = r.op(ctx, "AddMember")

	member := &model.LobbyMember{LobbyID: lobbyID, UserKey: userKey, JoinedAt: joinedAt}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lobby, err := lockLobby(tx, lobbyID)
		if err != nil {
			return err
		}

		var already int64
		if err := tx.Model(&model.LobbyMember{}).
			Where("lobby_id = ? AND user_key = ?", lobbyID, userKey).
			Count(&already).Error; err != nil {
			return err
		}
		if already > 0 {
			return ErrAlreadyExists
		}

		var count int64
		if err := memberCount(tx, lobbyID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(lobby.MaxTeamSize) {
			return ErrCapacity
		}

		return tx.Create(member).Error
	})
	if err != nil {
		return nil, MapPgError(err)
	}
	return member, nil
}

// RemoveMember deletes the membership; ErrNotFound when the user was not a member
func (r *LobbyRepository) RemoveMember(ctx context.Context, lobbyID uint, userKey string) error {
	ctx = r.op(ctx, "RemoveMember")

	return MapPgError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockLobby(tx, lobbyID); err != nil {
			return err
		}
		res := tx.Where("lobby_id = ? AND user_key = ?", lobbyID, userKey).Delete(&model.LobbyMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}))
}

// DeleteWithMembers soft-deletes the lobby and drops its memberships
func (r *LobbyRepository) DeleteWithMembers(ctx context.Context, lobbyID uint) error {
	ctx = r.op(ctx, "DeleteWithMembers")

	return MapPgError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Lobby{}, lobbyID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("lobby_id = ?", lobbyID).Delete(&model.LobbyMember{}).Error
	}))
}

// ListMembers pages through a lobby's members ordered by join time
func (r *LobbyRepository) ListMembers(ctx context.Context, lobbyID uint, page pagination.Request) ([]model.LobbyMember, int64, error) {
	ctx = r.op(ctx, "ListMembers")

	var (
		members []model.LobbyMember
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&model.LobbyMember{}).Where("lobby_id = ?", lobbyID).Count(&total).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Where("lobby_id = ?", lobbyID).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "joined_at"}, Desc: !page.Ascending()}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
			Limit(page.Limit).
			Offset(page.Offset()).
			Find(&members).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, MapPgError(err)
	}
	return members, total, nil
}

// CountMembers returns the current member count of each lobby in ids
func (r *LobbyRepository) CountMembers(ctx context.Context, ids []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		LobbyID uint
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.LobbyMember{}).
		Select("lobby_id, COUNT(*) AS count").
		Where("lobby_id IN ?", ids).
		Group("lobby_id").
		Scan(&rows).Error
	if err != nil {
		return nil, MapPgError(err)
	}
	for _, row := range rows {
		out[row.LobbyID] = row.Count
	}
	return out, nil
}

// ByRegion filters lobbies by region, case-insensitively
func ByRegion(region string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(region) = LOWER(?)", region)
	}
}
