package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Service is the membership workflow engine. Every operation takes the
// acting user and checks its own precondition; permission failures are
// reported as ErrForbidden values, never panics.
type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateGroupRequest) (*GroupResponse, error)
	Get(ctx context.Context, userID snowflake.ID, groupID string) (*GroupDetailResponse, error)
	List(ctx context.Context, req ListGroupsRequest) ([]GroupResponse, error)
	Update(ctx context.Context, userID snowflake.ID, groupID string, req UpdateGroupRequest) (*GroupResponse, error)
	Delete(ctx context.Context, userID snowflake.ID, groupID string) (*ActionResponse, error)

	ListMembers(ctx context.Context, groupID string) ([]MemberResponse, error)
	Leave(ctx context.Context, userID snowflake.ID, groupID string) (*LeaveResponse, error)
	RemoveMember(ctx context.Context, userID snowflake.ID, groupID, targetID string) (*ActionResponse, error)
	AddAdmin(ctx context.Context, userID snowflake.ID, groupID, targetID string) (*ActionResponse, error)
	RevokeAdmin(ctx context.Context, userID snowflake.ID, groupID, targetID string) (*ActionResponse, error)

	Apply(ctx context.Context, userID snowflake.ID, groupID string) (*ApplyResponse, error)
	ApproveApplication(ctx context.Context, userID snowflake.ID, groupID, applicationID string) (*ActionResponse, error)
	IgnoreApplication(ctx context.Context, userID snowflake.ID, groupID, applicationID string) (*ActionResponse, error)
	ListApplications(ctx context.Context, userID snowflake.ID, groupID string) ([]ApplicationResponse, error)

	InviteByEmail(ctx context.Context, userID snowflake.ID, groupID string, req InviteByEmailRequest) (*InviteResponse, error)
	ListInvitations(ctx context.Context, userID snowflake.ID, groupID string) ([]InvitationResponse, error)
	RedeemInvitation(ctx context.Context, userID snowflake.ID, key string) (*RedeemResponse, error)
}

type CreateGroupRequest struct {
	Name    string
	Info    string
	Website string
}

type UpdateGroupRequest struct {
	Name    *string
	Info    *string
	Website *string
}

type ListGroupsRequest struct {
	Limit  int
	Offset int
}

type InviteByEmailRequest struct {
	// Emails is free-text input; addresses are separated by commas
	// and/or whitespace.
	Emails string
}

type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Info      string    `json:"info"`
	Website   string    `json:"website"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

type GroupDetailResponse struct {
	GroupResponse
	MemberCount int64 `json:"member_count"`
	AdminCount  int64 `json:"admin_count"`
	IsMember    bool  `json:"is_member"`
	IsAdmin     bool  `json:"is_admin"`
	IsOwner     bool  `json:"is_owner"`
}

// ActionResponse is the stable payload shape of mutating operations.
type ActionResponse struct {
	Action  string `json:"action"`
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id,omitempty"`
}

type LeaveResponse struct {
	ActionResponse
	// GroupDeleted reports that leaving as the sole admin deleted the
	// group instead of leaving it admin-less.
	GroupDeleted bool `json:"group_deleted"`
}

type ApplyResponse struct {
	ActionResponse
	AlreadyMember bool   `json:"already_member"`
	ApplicationID string `json:"application_id,omitempty"`
}

type MemberResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationResponse deliberately omits the secret key; it is only ever
// delivered to the invited address.
type InvitationResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Email     string    `json:"email"`
	InvitedBy string    `json:"invited_by"`
	CreatedAt time.Time `json:"created_at"`
}

type ApplicationResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type InviteResponse struct {
	ActionResponse
	Invited int `json:"invited"`
}

// RedeemResponse reports invitation redemption. Valid=false is the
// expected outcome for an unknown key, not an error.
type RedeemResponse struct {
	ActionResponse
	Valid bool `json:"valid"`
}

var (
	ErrInvalidUser    = errors.New("invalid_user")
	ErrInvalidGroup   = errors.New("invalid_group")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidWebsite = errors.New("invalid_website")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrEmptyEmailList = errors.New("empty_email_list")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
)
