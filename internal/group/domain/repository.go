package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the registry of groups, memberships, applications and
// invitations. Get* methods for sub-entities return (nil, nil) when the
// row does not exist; GetGroup returns gorm.ErrRecordNotFound.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateGroup(ctx context.Context, group Group) error
	GetGroup(ctx context.Context, id snowflake.ID) (*Group, error)
	// GetGroupForUpdate locks the group row for the duration of the
	// surrounding transaction.
	GetGroupForUpdate(ctx context.Context, id snowflake.ID) (*Group, error)
	UpdateGroup(ctx context.Context, group Group) error
	SetCreator(ctx context.Context, groupID, userID snowflake.ID) error
	// DeleteGroup removes the group and cascades members, applications
	// and invitations.
	DeleteGroup(ctx context.Context, id snowflake.ID) error
	ListGroups(ctx context.Context, kind string, limit, offset int) ([]Group, error)

	AddMember(ctx context.Context, member GroupMember) error
	GetMember(ctx context.Context, groupID, userID snowflake.ID) (*GroupMember, error)
	SetMemberRole(ctx context.Context, groupID, userID snowflake.ID, role string) error
	RemoveMember(ctx context.Context, groupID, userID snowflake.ID) error
	ListMembers(ctx context.Context, groupID snowflake.ID) ([]GroupMember, error)
	// ListAdmins returns admin memberships ordered by user id ascending.
	ListAdmins(ctx context.Context, groupID snowflake.ID) ([]GroupMember, error)
	CountMembers(ctx context.Context, groupID snowflake.ID) (int64, error)
	CountAdmins(ctx context.Context, groupID snowflake.ID) (int64, error)

	// ApplyOrRefresh inserts the application or, if one exists for the
	// (group, user) pair, refreshes its CreatedAt. It returns the stored
	// row and reports whether a new one was created.
	ApplyOrRefresh(ctx context.Context, application Application) (*Application, bool, error)
	GetApplication(ctx context.Context, id snowflake.ID) (*Application, error)
	DeleteApplication(ctx context.Context, id snowflake.ID) error
	ListApplications(ctx context.Context, groupID snowflake.ID) ([]Application, error)

	CreateInvitation(ctx context.Context, invitation Invitation) error
	FindInvitationsByKey(ctx context.Context, key string) ([]Invitation, error)
	// DeleteInvitationsByKey consumes every invitation carrying the key
	// and reports how many rows it removed, so callers can tell whether
	// they won a concurrent redemption.
	DeleteInvitationsByKey(ctx context.Context, key string) (int64, error)
	ListInvitations(ctx context.Context, groupID snowflake.ID) ([]Invitation, error)
}
