package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/usergroups/internal/group/domain"
	pkgdb "github.com/smallbiznis/usergroups/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) CreateGroup(ctx context.Context, group domain.Group) error {
	return r.db.WithContext(ctx).Create(&group).Error
}

func (r *repository) GetGroup(ctx context.Context, id snowflake.ID) (*domain.Group, error) {
	var group domain.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) GetGroupForUpdate(ctx context.Context, id snowflake.ID) (*domain.Group, error) {
	tx := r.db.WithContext(ctx)
	// SQLite serializes writers on its own and rejects FOR UPDATE.
	if r.db.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var group domain.Group
	if err := tx.First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) UpdateGroup(ctx context.Context, group domain.Group) error {
	return r.db.WithContext(ctx).
		Model(&domain.Group{}).
		Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"name":       group.Name,
			"info":       group.Info,
			"website":    group.Website,
			"updated_at": group.UpdatedAt,
		}).Error
}

func (r *repository) SetCreator(ctx context.Context, groupID, userID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Group{}).
		Where("id = ?", groupID).
		Update("creator_id", userID).Error
}

func (r *repository) DeleteGroup(ctx context.Context, id snowflake.ID) error {
	if err := r.db.WithContext(ctx).Where("group_id = ?", id).Delete(&domain.Invitation{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("group_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("group_id = ?", id).Delete(&domain.GroupMember{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&domain.Group{}, "id = ?", id).Error
}

func (r *repository) ListGroups(ctx context.Context, kind string, limit, offset int) ([]domain.Group, error) {
	var groups []domain.Group
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repository) AddMember(ctx context.Context, member domain.GroupMember) error {
	return r.db.WithContext(ctx).Create(&member).Error
}

func (r *repository) GetMember(ctx context.Context, groupID, userID snowflake.ID) (*domain.GroupMember, error) {
	var member domain.GroupMember
	err := r.db.WithContext(ctx).
		First(&member, "group_id = ? AND user_id = ?", groupID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) SetMemberRole(ctx context.Context, groupID, userID snowflake.ID, role string) error {
	return r.db.WithContext(ctx).
		Model(&domain.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("role", role).Error
}

func (r *repository) RemoveMember(ctx context.Context, groupID, userID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&domain.GroupMember{}).Error
}

func (r *repository) ListMembers(ctx context.Context, groupID snowflake.ID) ([]domain.GroupMember, error) {
	var members []domain.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) ListAdmins(ctx context.Context, groupID snowflake.ID) ([]domain.GroupMember, error) {
	var admins []domain.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND role = ?", groupID, domain.RoleAdmin).
		Order("user_id ASC").
		Find(&admins).Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *repository) CountMembers(ctx context.Context, groupID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountAdmins(ctx context.Context, groupID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.GroupMember{}).
		Where("group_id = ? AND role = ?", groupID, domain.RoleAdmin).
		Count(&count).Error
	return count, err
}

// ApplyOrRefresh attempts the insert first and falls back to a
// timestamp refresh on the unique (group_id, user_id) index, so
// concurrent double-submission cannot produce two rows.
func (r *repository) ApplyOrRefresh(ctx context.Context, application domain.Application) (*domain.Application, bool, error) {
	err := r.db.WithContext(ctx).Create(&application).Error
	if err == nil {
		return &application, true, nil
	}
	if !pkgdb.IsDuplicateKeyErr(err) {
		return nil, false, err
	}

	err = r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("group_id = ? AND user_id = ?", application.GroupID, application.UserID).
		Update("created_at", application.CreatedAt).Error
	if err != nil {
		return nil, false, err
	}

	var existing domain.Application
	err = r.db.WithContext(ctx).
		First(&existing, "group_id = ? AND user_id = ?", application.GroupID, application.UserID).Error
	if err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *repository) GetApplication(ctx context.Context, id snowflake.ID) (*domain.Application, error) {
	var application domain.Application
	err := r.db.WithContext(ctx).First(&application, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *repository) DeleteApplication(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Delete(&domain.Application{}, "id = ?", id).Error
}

func (r *repository) ListApplications(ctx context.Context, groupID snowflake.ID) ([]domain.Application, error) {
	var applications []domain.Application
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *repository) CreateInvitation(ctx context.Context, invitation domain.Invitation) error {
	return r.db.WithContext(ctx).Create(&invitation).Error
}

func (r *repository) FindInvitationsByKey(ctx context.Context, key string) ([]domain.Invitation, error) {
	var invitations []domain.Invitation
	err := r.db.WithContext(ctx).
		Where("secret_key = ?", key).
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *repository) DeleteInvitationsByKey(ctx context.Context, key string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("secret_key = ?", key).
		Delete(&domain.Invitation{})
	return res.RowsAffected, res.Error
}

func (r *repository) ListInvitations(ctx context.Context, groupID snowflake.ID) ([]domain.Invitation, error) {
	var invitations []domain.Invitation
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}
