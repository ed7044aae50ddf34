package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/usergroups/internal/clock"
	"github.com/smallbiznis/usergroups/internal/group/domain"
	"github.com/smallbiznis/usergroups/internal/group/event"
	pkgdb "github.com/smallbiznis/usergroups/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxNameLength = 130

const (
	defaultListLimit = 25
	maxListLimit     = 100
)

type service struct {
	db       *gorm.DB
	repo     domain.Repository
	genID    *snowflake.Node
	clk      clock.Clock
	kind     domain.Kind
	notifier event.Notifier
	log      *zap.Logger
}

func NewService(db *gorm.DB, repo domain.Repository, genID *snowflake.Node, clk clock.Clock, kind domain.Kind, notifier event.Notifier, log *zap.Logger) domain.Service {
	return &service{
		db:       db,
		repo:     repo,
		genID:    genID,
		clk:      clk,
		kind:     kind,
		notifier: notifier,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateGroupRequest) (*domain.GroupResponse, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	website, err := validateWebsite(req.Website)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	group := domain.Group{
		ID:        s.genID.Generate(),
		Kind:      s.kind.Slug,
		Name:      name,
		Slug:      slug.Make(name),
		Info:      strings.TrimSpace(req.Info),
		Website:   website,
		CreatorID: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateGroup(ctx, group); err != nil {
			return err
		}
		return repo.AddMember(ctx, domain.GroupMember{
			ID:        s.genID.Generate(),
			GroupID:   group.ID,
			UserID:    userID,
			Role:      domain.RoleAdmin,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := groupResponse(group)
	return &resp, nil
}

func (s *service) Get(ctx context.Context, userID snowflake.ID, groupID string) (*domain.GroupDetailResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}

	group, err := s.repo.GetGroup(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	memberCount, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	adminCount, err := s.repo.CountAdmins(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := domain.GroupDetailResponse{
		GroupResponse: groupResponse(*group),
		MemberCount:   memberCount,
		AdminCount:    adminCount,
	}

	if userID != 0 {
		member, err := s.repo.GetMember(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		detail.IsMember = member != nil
		detail.IsAdmin = isAdmin(group, member, userID)
		detail.IsOwner = group.CreatorID == userID
	}

	return &detail, nil
}

func (s *service) List(ctx context.Context, req domain.ListGroupsRequest) ([]domain.GroupResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	groups, err := s.repo.ListGroups(ctx, s.kind.Slug, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.GroupResponse, 0, len(groups))
	for _, group := range groups {
		resp = append(resp, groupResponse(group))
	}
	return resp, nil
}

func (s *service) ListMembers(ctx context.Context, groupID string) ([]domain.MemberResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetGroup(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.MemberResponse, 0, len(members))
	for _, member := range members {
		resp = append(resp, domain.MemberResponse{
			UserID:    member.UserID.String(),
			Role:      member.Role,
			CreatedAt: member.CreatedAt,
		})
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, userID snowflake.ID, groupID string, req domain.UpdateGroupRequest) (*domain.GroupResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	var updated domain.Group
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		group, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, repo, group, userID); err != nil {
			return err
		}

		if req.Name != nil {
			name, err := validateName(*req.Name)
			if err != nil {
				return err
			}
			group.Name = name
		}
		if req.Info != nil {
			group.Info = strings.TrimSpace(*req.Info)
		}
		if req.Website != nil {
			website, err := validateWebsite(*req.Website)
			if err != nil {
				return err
			}
			group.Website = website
		}

		group.UpdatedAt = s.clk.Now()
		if err := repo.UpdateGroup(ctx, *group); err != nil {
			return err
		}
		updated = *group
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := groupResponse(updated)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, userID snowflake.ID, groupID string) (*domain.ActionResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		group, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, repo, group, userID); err != nil {
			return err
		}
		return repo.DeleteGroup(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return &domain.ActionResponse{
		Action:  "delete_group",
		GroupID: id.String(),
	}, nil
}

func (s *service) Leave(ctx context.Context, userID snowflake.ID, groupID string) (*domain.LeaveResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	var deleted bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		group, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}

		member, err := repo.GetMember(ctx, id, userID)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.ErrForbidden
		}

		// A lone admin cannot simply leave; the group is deleted
		// instead of being left without administrators.
		if member.Role == domain.RoleAdmin {
			adminCount, err := repo.CountAdmins(ctx, id)
			if err != nil {
				return err
			}
			if adminCount == 1 {
				deleted = true
				return repo.DeleteGroup(ctx, id)
			}
		}

		if err := s.removeAdmin(ctx, repo, group, userID); err != nil {
			return err
		}
		return repo.RemoveMember(ctx, id, userID)
	})
	if err != nil {
		return nil, err
	}

	action := "leave_group"
	if deleted {
		action = "delete_group"
	}
	return &domain.LeaveResponse{
		ActionResponse: domain.ActionResponse{
			Action:  action,
			GroupID: id.String(),
			UserID:  userID.String(),
		},
		GroupDeleted: deleted,
	}, nil
}

func (s *service) RemoveMember(ctx context.Context, userID snowflake.ID, groupID, targetID string) (*domain.ActionResponse, error) {
	target, err := parseUserID(targetID)
	if err != nil {
		return nil, err
	}

	// Self-removal is the leave operation.
	if target == userID {
		leave, err := s.Leave(ctx, userID, groupID)
		if err != nil {
			return nil, err
		}
		return &leave.ActionResponse, nil
	}

	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		group, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, repo, group, userID); err != nil {
			return err
		}

		if err := s.removeAdmin(ctx, repo, group, target); err != nil {
			return err
		}
		return repo.RemoveMember(ctx, id, target)
	})
	if err != nil {
		return nil, err
	}

	return &domain.ActionResponse{
		Action:  "remove_member",
		GroupID: id.String(),
		UserID:  target.String(),
	}, nil
}

func (s *service) AddAdmin(ctx context.Context, userID snowflake.ID, groupID, targetID string) (*domain.ActionResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	target, err := parseUserID(targetID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		group, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, repo, group, userID); err != nil {
			return err
		}

		member, err := repo.GetMember(ctx, id, target)
		if err != nil {
			return err
		}
		// Promotion implies membership.
		if member == nil {
			return repo.AddMember(ctx, domain.GroupMember{
				ID:        s.genID.Generate(),
				GroupID:   id,
				UserID:    target,
				Role:      domain.RoleAdmin,
				CreatedAt: s.clk.Now(),
			})
		}
		if member.Role != domain.RoleAdmin {
			return repo.SetMemberRole(ctx, id, target, domain.RoleAdmin)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.ActionResponse{
		Action:  "add_admin",
		GroupID: id.String(),
		UserID:  target.String(),
	}, nil
}

func (s *service) RevokeAdmin(ctx context.Context, userID snowflake.ID, groupID, targetID string) (*domain.ActionResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	target, err := parseUserID(targetID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		group, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, repo, group, userID); err != nil {
			return err
		}
		return s.removeAdmin(ctx, repo, group, target)
	})
	if err != nil {
		return nil, err
	}

	return &domain.ActionResponse{
		Action:  "revoke_admin",
		GroupID: id.String(),
		UserID:  target.String(),
	}, nil
}

func (s *service) Apply(ctx context.Context, userID snowflake.ID, groupID string) (*domain.ApplyResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	group, err := s.repo.GetGroup(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	member, err := s.repo.GetMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return &domain.ApplyResponse{
			ActionResponse: domain.ActionResponse{
				Action:  "apply_to_join",
				GroupID: id.String(),
				UserID:  userID.String(),
			},
			AlreadyMember: true,
		}, nil
	}

	application, created, err := s.repo.ApplyOrRefresh(ctx, domain.Application{
		ID:        s.genID.Generate(),
		GroupID:   id,
		UserID:    userID,
		CreatedAt: s.clk.Now(),
	})
	if err != nil {
		return nil, err
	}

	if created {
		admins, err := s.repo.ListAdmins(ctx, id)
		if err != nil {
			return nil, err
		}
		adminIDs := make([]snowflake.ID, 0, len(admins))
		for _, admin := range admins {
			adminIDs = append(adminIDs, admin.UserID)
		}
		s.notifier.ApplicationReceived(ctx, *group, *application, adminIDs)
	}

	return &domain.ApplyResponse{
		ActionResponse: domain.ActionResponse{
			Action:  "apply_to_join",
			GroupID: id.String(),
			UserID:  userID.String(),
		},
		ApplicationID: application.ID.String(),
	}, nil
}

func (s *service) ApproveApplication(ctx context.Context, userID snowflake.ID, groupID, applicationID string) (*domain.ActionResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	appID, err := parseApplicationID(applicationID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	var (
		group     domain.Group
		applicant snowflake.ID
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		locked, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, repo, locked, userID); err != nil {
			return err
		}

		application, err := repo.GetApplication(ctx, appID)
		if err != nil {
			return err
		}
		if application == nil || application.GroupID != id {
			return domain.ErrNotFound
		}

		member, err := repo.GetMember(ctx, id, application.UserID)
		if err != nil {
			return err
		}
		if member == nil {
			if err := repo.AddMember(ctx, domain.GroupMember{
				ID:        s.genID.Generate(),
				GroupID:   id,
				UserID:    application.UserID,
				Role:      domain.RoleMember,
				CreatedAt: s.clk.Now(),
			}); err != nil {
				return err
			}
		}

		group = *locked
		applicant = application.UserID
		return repo.DeleteApplication(ctx, appID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ApplicationApproved(ctx, group, applicant)

	return &domain.ActionResponse{
		Action:  "approve_application",
		GroupID: id.String(),
		UserID:  applicant.String(),
	}, nil
}

func (s *service) IgnoreApplication(ctx context.Context, userID snowflake.ID, groupID, applicationID string) (*domain.ActionResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	appID, err := parseApplicationID(applicationID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	var applicant snowflake.ID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		group, err := s.loadGroupForUpdate(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, repo, group, userID); err != nil {
			return err
		}

		application, err := repo.GetApplication(ctx, appID)
		if err != nil {
			return err
		}
		if application == nil || application.GroupID != id {
			return domain.ErrNotFound
		}

		applicant = application.UserID
		return repo.DeleteApplication(ctx, appID)
	})
	if err != nil {
		return nil, err
	}

	return &domain.ActionResponse{
		Action:  "ignore_application",
		GroupID: id.String(),
		UserID:  applicant.String(),
	}, nil
}

func (s *service) ListApplications(ctx context.Context, userID snowflake.ID, groupID string) ([]domain.ApplicationResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	group, err := s.repo.GetGroup(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.requireAdmin(ctx, s.repo, group, userID); err != nil {
		return nil, err
	}

	applications, err := s.repo.ListApplications(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		resp = append(resp, domain.ApplicationResponse{
			ID:        application.ID.String(),
			GroupID:   application.GroupID.String(),
			UserID:    application.UserID.String(),
			CreatedAt: application.CreatedAt,
		})
	}
	return resp, nil
}

func (s *service) InviteByEmail(ctx context.Context, userID snowflake.ID, groupID string, req domain.InviteByEmailRequest) (*domain.InviteResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	emails, err := parseEmailBatch(req.Emails)
	if err != nil {
		return nil, err
	}

	group, err := s.repo.GetGroup(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.requireAdmin(ctx, s.repo, group, userID); err != nil {
		return nil, err
	}

	invitations := make([]domain.Invitation, 0, len(emails))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.clk.Now()

		for _, address := range emails {
			invitation := domain.Invitation{
				ID:        s.genID.Generate(),
				GroupID:   id,
				InvitedBy: userID,
				Email:     address,
				CreatedAt: now,
			}

			key, err := newSecretKey()
			if err != nil {
				return err
			}
			invitation.SecretKey = key

			// Key collision is astronomically unlikely; one retry with
			// a fresh key covers it. The savepoint keeps the failed
			// insert from aborting the postgres transaction.
			if err := tx.SavePoint("invitation_insert").Error; err != nil {
				return err
			}
			if err := repo.CreateInvitation(ctx, invitation); err != nil {
				if !pkgdb.IsDuplicateKeyErr(err) {
					return err
				}
				if err := tx.RollbackTo("invitation_insert").Error; err != nil {
					return err
				}
				key, err = newSecretKey()
				if err != nil {
					return err
				}
				invitation.SecretKey = key
				if err := repo.CreateInvitation(ctx, invitation); err != nil {
					return err
				}
			}

			invitations = append(invitations, invitation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Email dispatch is best-effort; a failed send never rolls back the
	// invitation rows.
	for _, invitation := range invitations {
		s.notifier.InvitationCreated(ctx, *group, invitation, s.kind.JoinURL(invitation.SecretKey))
	}

	return &domain.InviteResponse{
		ActionResponse: domain.ActionResponse{
			Action:  "email_invitation",
			GroupID: id.String(),
		},
		Invited: len(invitations),
	}, nil
}

func (s *service) ListInvitations(ctx context.Context, userID snowflake.ID, groupID string) ([]domain.InvitationResponse, error) {
	id, err := parseGroupID(groupID)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	group, err := s.repo.GetGroup(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.requireAdmin(ctx, s.repo, group, userID); err != nil {
		return nil, err
	}

	invitations, err := s.repo.ListInvitations(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.InvitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		resp = append(resp, domain.InvitationResponse{
			ID:        invitation.ID.String(),
			GroupID:   invitation.GroupID.String(),
			Email:     invitation.Email,
			InvitedBy: invitation.InvitedBy.String(),
			CreatedAt: invitation.CreatedAt,
		})
	}
	return resp, nil
}

func (s *service) RedeemInvitation(ctx context.Context, userID snowflake.ID, key string) (*domain.RedeemResponse, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return &domain.RedeemResponse{Valid: false}, nil
	}

	var (
		valid   bool
		groupID snowflake.ID
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		invitations, err := repo.FindInvitationsByKey(ctx, key)
		if err != nil {
			return err
		}
		if len(invitations) == 0 {
			return nil
		}

		// The unique index should make duplicates impossible, but a
		// key-wide delete consumes any that exist in one sweep. Zero
		// rows means a concurrent redeemer already claimed the key.
		deleted, err := repo.DeleteInvitationsByKey(ctx, key)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return nil
		}

		groupID = invitations[0].GroupID
		member, err := repo.GetMember(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if member == nil {
			if err := repo.AddMember(ctx, domain.GroupMember{
				ID:        s.genID.Generate(),
				GroupID:   groupID,
				UserID:    userID,
				Role:      domain.RoleMember,
				CreatedAt: s.clk.Now(),
			}); err != nil {
				return err
			}
		}

		valid = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !valid {
		return &domain.RedeemResponse{Valid: false}, nil
	}
	return &domain.RedeemResponse{
		ActionResponse: domain.ActionResponse{
			Action:  "group_joined",
			GroupID: groupID.String(),
			UserID:  userID.String(),
		},
		Valid: true,
	}, nil
}

// removeAdmin demotes userID from the admin role. When the demoted user
// is the creator and admins remain, the creator reference is reassigned
// to the remaining admin with the smallest user id, inside the caller's
// transaction. When no admins remain the creator reference is left
// pointing at the last-known creator.
func (s *service) removeAdmin(ctx context.Context, repo domain.Repository, group *domain.Group, userID snowflake.ID) error {
	member, err := repo.GetMember(ctx, group.ID, userID)
	if err != nil {
		return err
	}
	if member == nil || member.Role != domain.RoleAdmin {
		return nil
	}

	if err := repo.SetMemberRole(ctx, group.ID, userID, domain.RoleMember); err != nil {
		return err
	}

	if group.CreatorID != userID {
		return nil
	}

	admins, err := repo.ListAdmins(ctx, group.ID)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return nil
	}

	replacement := admins[0].UserID
	if err := repo.SetCreator(ctx, group.ID, replacement); err != nil {
		return err
	}
	group.CreatorID = replacement

	s.log.Info("creator reassigned",
		zap.String("group_id", group.ID.String()),
		zap.String("old_creator_id", userID.String()),
		zap.String("new_creator_id", replacement.String()),
	)
	return nil
}

func (s *service) loadGroupForUpdate(ctx context.Context, repo domain.Repository, id snowflake.ID) (*domain.Group, error) {
	group, err := repo.GetGroupForUpdate(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *service) requireAdmin(ctx context.Context, repo domain.Repository, group *domain.Group, userID snowflake.ID) error {
	member, err := repo.GetMember(ctx, group.ID, userID)
	if err != nil {
		return err
	}
	if !isAdmin(group, member, userID) {
		return domain.ErrForbidden
	}
	return nil
}

func isAdmin(group *domain.Group, member *domain.GroupMember, userID snowflake.ID) bool {
	if group.CreatorID == userID {
		return true
	}
	return member != nil && member.Role == domain.RoleAdmin
}

func groupResponse(group domain.Group) domain.GroupResponse {
	return domain.GroupResponse{
		ID:        group.ID.String(),
		Name:      group.Name,
		Slug:      group.Slug,
		Info:      group.Info,
		Website:   group.Website,
		CreatorID: group.CreatorID.String(),
		CreatedAt: group.CreatedAt,
	}
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len(name) > maxNameLength {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

func validateWebsite(raw string) (string, error) {
	website := strings.TrimSpace(raw)
	if website == "" {
		return "", nil
	}
	parsed, err := url.Parse(website)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", domain.ErrInvalidWebsite
	}
	return website, nil
}

func parseGroupID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidGroup
	}
	return id, nil
}

func parseUserID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidUser
	}
	return id, nil
}

func parseApplicationID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
