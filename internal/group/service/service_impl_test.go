package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/usergroups/internal/clock"
	"github.com/smallbiznis/usergroups/internal/group/domain"
	"github.com/smallbiznis/usergroups/internal/group/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu        sync.Mutex
	received  []domain.Application
	adminSets [][]snowflake.ID
	approved  []snowflake.ID
	joinURLs  []string
}

func (n *recordingNotifier) ApplicationReceived(ctx context.Context, group domain.Group, application domain.Application, adminIDs []snowflake.ID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.received = append(n.received, application)
	n.adminSets = append(n.adminSets, adminIDs)
}

func (n *recordingNotifier) ApplicationApproved(ctx context.Context, group domain.Group, applicantID snowflake.ID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, applicantID)
}

func (n *recordingNotifier) InvitationCreated(ctx context.Context, group domain.Group, invitation domain.Invitation, joinURL string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.joinURLs = append(n.joinURLs, joinURL)
}

func (n *recordingNotifier) receivedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.received)
}

type testEnv struct {
	svc      domain.Service
	db       *gorm.DB
	node     *snowflake.Node
	clk      *clock.FakeClock
	notifier *recordingNotifier
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := conn.AutoMigrate(
		&domain.Group{},
		&domain.GroupMember{},
		&domain.Application{},
		&domain.Invitation{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create id generator: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	kind := domain.Kind{
		Slug:              "team",
		InviteURLTemplate: "https://example.com/teams/join/{key}",
	}

	svc := NewService(db, repository.NewRepository(db), node, clk, kind, notifier, zap.NewNop())
	return &testEnv{svc: svc, db: db, node: node, clk: clk, notifier: notifier}
}

func (e *testEnv) createGroup(t *testing.T, creator snowflake.ID, name string) *domain.GroupResponse {
	t.Helper()
	group, err := e.svc.Create(context.Background(), creator, domain.CreateGroupRequest{Name: name})
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	return group
}

func TestCreateGroupMakesCreatorAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()

	group := env.createGroup(t, creator, "Chess Club")
	if group.Slug != "chess-club" {
		t.Fatalf("expected slug chess-club, got %q", group.Slug)
	}
	if group.CreatorID != creator.String() {
		t.Fatalf("expected creator %s, got %s", creator, group.CreatorID)
	}

	detail, err := env.svc.Get(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if detail.MemberCount != 1 || detail.AdminCount != 1 {
		t.Fatalf("expected 1 member and 1 admin, got %d/%d", detail.MemberCount, detail.AdminCount)
	}
	if !detail.IsMember || !detail.IsAdmin || !detail.IsOwner {
		t.Fatalf("expected creator flags set, got member=%v admin=%v owner=%v", detail.IsMember, detail.IsAdmin, detail.IsOwner)
	}
}

func TestCreateGroupValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()

	if _, err := env.svc.Create(ctx, creator, domain.CreateGroupRequest{Name: "   "}); err != domain.ErrInvalidName {
		t.Fatalf("expected invalid_name for blank name, got %v", err)
	}
	if _, err := env.svc.Create(ctx, creator, domain.CreateGroupRequest{Name: strings.Repeat("x", 131)}); err != domain.ErrInvalidName {
		t.Fatalf("expected invalid_name for oversized name, got %v", err)
	}
	if _, err := env.svc.Create(ctx, creator, domain.CreateGroupRequest{Name: "ok", Website: "ftp://example.com"}); err != domain.ErrInvalidWebsite {
		t.Fatalf("expected invalid_website, got %v", err)
	}
	if _, err := env.svc.Create(ctx, 0, domain.CreateGroupRequest{Name: "ok"}); err != domain.ErrInvalidUser {
		t.Fatalf("expected invalid_user, got %v", err)
	}
}

func TestGetUnknownGroup(t *testing.T) {
	env := newTestEnv(t)
	user := env.node.Generate()

	if _, err := env.svc.Get(context.Background(), user, env.node.Generate().String()); err != domain.ErrNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestUpdateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	outsider := env.node.Generate()

	group := env.createGroup(t, creator, "Book Club")

	newName := "Reading Circle"
	if _, err := env.svc.Update(ctx, outsider, group.ID, domain.UpdateGroupRequest{Name: &newName}); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for outsider, got %v", err)
	}

	updated, err := env.svc.Update(ctx, creator, group.ID, domain.UpdateGroupRequest{Name: &newName})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("expected name %q, got %q", newName, updated.Name)
	}
	if updated.Slug != group.Slug {
		t.Fatalf("expected slug to stay %q, got %q", group.Slug, updated.Slug)
	}
}

func TestDeleteGroupRemovesEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	applicant := env.node.Generate()

	group := env.createGroup(t, creator, "Garden Society")
	if _, err := env.svc.Apply(ctx, applicant, group.ID); err != nil {
		t.Fatalf("failed to apply: %v", err)
	}

	if _, err := env.svc.Delete(ctx, applicant, group.ID); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for applicant, got %v", err)
	}
	if _, err := env.svc.Delete(ctx, creator, group.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	if _, err := env.svc.Get(ctx, creator, group.ID); err != domain.ErrNotFound {
		t.Fatalf("expected not_found after delete, got %v", err)
	}

	var members int64
	if err := env.db.Model(&domain.GroupMember{}).Count(&members).Error; err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	var applications int64
	if err := env.db.Model(&domain.Application{}).Count(&applications).Error; err != nil {
		t.Fatalf("failed to count applications: %v", err)
	}
	if members != 0 || applications != 0 {
		t.Fatalf("expected cascade delete, got %d members and %d applications", members, applications)
	}
}

func TestApplyApproveFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	applicant := env.node.Generate()

	group := env.createGroup(t, creator, "Running Club")

	apply, err := env.svc.Apply(ctx, applicant, group.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if apply.AlreadyMember {
		t.Fatal("expected a fresh application, got already_member")
	}
	if apply.ApplicationID == "" {
		t.Fatal("expected an application id")
	}

	if env.notifier.receivedCount() != 1 {
		t.Fatalf("expected 1 application notification, got %d", env.notifier.receivedCount())
	}
	if got := env.notifier.adminSets[0]; len(got) != 1 || got[0] != creator {
		t.Fatalf("expected notification to reach creator only, got %v", got)
	}

	applications, err := env.svc.ListApplications(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to list applications: %v", err)
	}
	if len(applications) != 1 || applications[0].UserID != applicant.String() {
		t.Fatalf("unexpected applications list: %+v", applications)
	}

	if _, err := env.svc.ListApplications(ctx, applicant, group.ID); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for applicant listing, got %v", err)
	}

	if _, err := env.svc.ApproveApplication(ctx, creator, group.ID, apply.ApplicationID); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}

	detail, err := env.svc.Get(ctx, applicant, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if !detail.IsMember || detail.IsAdmin {
		t.Fatalf("expected plain membership after approval, got member=%v admin=%v", detail.IsMember, detail.IsAdmin)
	}

	if len(env.notifier.approved) != 1 || env.notifier.approved[0] != applicant {
		t.Fatalf("expected approval notification for applicant, got %v", env.notifier.approved)
	}

	// The application is consumed by approval.
	applications, err = env.svc.ListApplications(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to list applications: %v", err)
	}
	if len(applications) != 0 {
		t.Fatalf("expected no applications left, got %d", len(applications))
	}
}

func TestApplyTwiceRefreshesTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	applicant := env.node.Generate()

	group := env.createGroup(t, creator, "Film Society")

	first, err := env.svc.Apply(ctx, applicant, group.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}

	env.clk.Advance(2 * time.Hour)

	second, err := env.svc.Apply(ctx, applicant, group.ID)
	if err != nil {
		t.Fatalf("failed to re-apply: %v", err)
	}
	if second.ApplicationID != first.ApplicationID {
		t.Fatalf("expected the original application to survive, got %s then %s", first.ApplicationID, second.ApplicationID)
	}
	if env.notifier.receivedCount() != 1 {
		t.Fatalf("expected a single notification across re-applies, got %d", env.notifier.receivedCount())
	}

	var application domain.Application
	if err := env.db.First(&application, "group_id = ? AND user_id = ?", snowflakeID(t, group.ID), applicant).Error; err != nil {
		t.Fatalf("failed to load application: %v", err)
	}
	if application.CreatedAt.Unix() != env.clk.Now().Unix() {
		t.Fatalf("expected refreshed timestamp %v, got %v", env.clk.Now(), application.CreatedAt)
	}
}

func TestApplyAsMemberIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()

	group := env.createGroup(t, creator, "Debate Team")

	apply, err := env.svc.Apply(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if !apply.AlreadyMember {
		t.Fatal("expected already_member for an existing member")
	}
	if env.notifier.receivedCount() != 0 {
		t.Fatalf("expected no notifications, got %d", env.notifier.receivedCount())
	}
}

func TestIgnoreApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	applicant := env.node.Generate()

	group := env.createGroup(t, creator, "Chess Club")
	apply, err := env.svc.Apply(ctx, applicant, group.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}

	if _, err := env.svc.IgnoreApplication(ctx, creator, group.ID, apply.ApplicationID); err != nil {
		t.Fatalf("failed to ignore: %v", err)
	}

	detail, err := env.svc.Get(ctx, applicant, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if detail.IsMember {
		t.Fatal("expected ignored applicant to stay outside the group")
	}

	if _, err := env.svc.IgnoreApplication(ctx, creator, group.ID, apply.ApplicationID); err != domain.ErrNotFound {
		t.Fatalf("expected not_found for consumed application, got %v", err)
	}
}

func TestApproveApplicationFromAnotherGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	applicant := env.node.Generate()

	groupA := env.createGroup(t, creator, "Group A")
	groupB := env.createGroup(t, creator, "Group B")

	apply, err := env.svc.Apply(ctx, applicant, groupA.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}

	if _, err := env.svc.ApproveApplication(ctx, creator, groupB.ID, apply.ApplicationID); err != domain.ErrNotFound {
		t.Fatalf("expected not_found for cross-group approval, got %v", err)
	}
}

func TestAddAdminImpliesMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	target := env.node.Generate()

	group := env.createGroup(t, creator, "Cooking Club")

	if _, err := env.svc.AddAdmin(ctx, creator, group.ID, target.String()); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}

	detail, err := env.svc.Get(ctx, target, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if !detail.IsMember || !detail.IsAdmin {
		t.Fatalf("expected promoted user to be admin member, got member=%v admin=%v", detail.IsMember, detail.IsAdmin)
	}
}

func TestRevokeAdminKeepsMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	target := env.node.Generate()

	group := env.createGroup(t, creator, "Cycling Club")
	if _, err := env.svc.AddAdmin(ctx, creator, group.ID, target.String()); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}

	if _, err := env.svc.RevokeAdmin(ctx, target, group.ID, creator.String()); err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}

	// Revoking the creator reassigns ownership to the remaining admin.
	detail, err := env.svc.Get(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if !detail.IsMember {
		t.Fatal("expected demoted creator to remain a member")
	}
	if detail.IsAdmin || detail.IsOwner {
		t.Fatalf("expected demoted creator to lose admin and ownership, got admin=%v owner=%v", detail.IsAdmin, detail.IsOwner)
	}
	if detail.CreatorID != target.String() {
		t.Fatalf("expected creator reassigned to %s, got %s", target, detail.CreatorID)
	}
}

func TestRevokeAdminReassignsToSmallestUserID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	second := env.node.Generate()
	third := env.node.Generate()

	group := env.createGroup(t, creator, "Science Club")
	if _, err := env.svc.AddAdmin(ctx, creator, group.ID, second.String()); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}
	if _, err := env.svc.AddAdmin(ctx, creator, group.ID, third.String()); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}

	if _, err := env.svc.RevokeAdmin(ctx, second, group.ID, creator.String()); err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}

	detail, err := env.svc.Get(ctx, 0, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if detail.CreatorID != second.String() {
		t.Fatalf("expected ownership to pass to the lowest remaining admin id %s, got %s", second, detail.CreatorID)
	}
}

func TestRevokeLastAdminKeepsCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()

	group := env.createGroup(t, creator, "Quiet Club")

	// Self-demotion by the only admin leaves the group without admins
	// and the creator reference pointing at the last-known creator.
	if _, err := env.svc.RevokeAdmin(ctx, creator, group.ID, creator.String()); err != nil {
		t.Fatalf("failed to revoke: %v", err)
	}

	detail, err := env.svc.Get(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if detail.AdminCount != 0 {
		t.Fatalf("expected no admins left, got %d", detail.AdminCount)
	}
	if detail.CreatorID != creator.String() {
		t.Fatalf("expected creator reference unchanged, got %s", detail.CreatorID)
	}
	if !detail.IsMember {
		t.Fatal("expected demoted creator to remain a member")
	}
}

func TestLeaveAsSoleAdminDeletesGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()

	group := env.createGroup(t, creator, "Solo Club")

	left, err := env.svc.Leave(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to leave: %v", err)
	}
	if !left.GroupDeleted {
		t.Fatal("expected sole-admin leave to delete the group")
	}

	if _, err := env.svc.Get(ctx, creator, group.ID); err != domain.ErrNotFound {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestLeaveWithRemainingAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	second := env.node.Generate()

	group := env.createGroup(t, creator, "Shared Club")
	if _, err := env.svc.AddAdmin(ctx, creator, group.ID, second.String()); err != nil {
		t.Fatalf("failed to add admin: %v", err)
	}

	left, err := env.svc.Leave(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to leave: %v", err)
	}
	if left.GroupDeleted {
		t.Fatal("expected the group to survive with a remaining admin")
	}

	detail, err := env.svc.Get(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if detail.IsMember {
		t.Fatal("expected departed creator to no longer be a member")
	}
	if detail.CreatorID != second.String() {
		t.Fatalf("expected ownership reassigned to %s, got %s", second, detail.CreatorID)
	}
}

func TestLeaveAsNonMember(t *testing.T) {
	env := newTestEnv(t)
	creator := env.node.Generate()
	outsider := env.node.Generate()

	group := env.createGroup(t, creator, "Closed Club")

	if _, err := env.svc.Leave(context.Background(), outsider, group.ID); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for non-member leave, got %v", err)
	}
}

func TestRemoveMemberSelfIsLeave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	member := env.node.Generate()

	group := env.createGroup(t, creator, "Open Club")
	apply, err := env.svc.Apply(ctx, member, group.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if _, err := env.svc.ApproveApplication(ctx, creator, group.ID, apply.ApplicationID); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}

	action, err := env.svc.RemoveMember(ctx, member, group.ID, member.String())
	if err != nil {
		t.Fatalf("failed to self-remove: %v", err)
	}
	if action.Action != "leave_group" {
		t.Fatalf("expected self-removal to be a leave, got %q", action.Action)
	}
}

func TestRemoveMemberRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	memberA := env.node.Generate()
	memberB := env.node.Generate()

	group := env.createGroup(t, creator, "Strict Club")
	for _, member := range []snowflake.ID{memberA, memberB} {
		apply, err := env.svc.Apply(ctx, member, group.ID)
		if err != nil {
			t.Fatalf("failed to apply: %v", err)
		}
		if _, err := env.svc.ApproveApplication(ctx, creator, group.ID, apply.ApplicationID); err != nil {
			t.Fatalf("failed to approve: %v", err)
		}
	}

	if _, err := env.svc.RemoveMember(ctx, memberA, group.ID, memberB.String()); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for member removing member, got %v", err)
	}

	if _, err := env.svc.RemoveMember(ctx, creator, group.ID, memberB.String()); err != nil {
		t.Fatalf("failed to remove member: %v", err)
	}

	detail, err := env.svc.Get(ctx, memberB, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if detail.IsMember {
		t.Fatal("expected removed user to no longer be a member")
	}
}

func TestInviteAndRedeem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	invitee := env.node.Generate()

	group := env.createGroup(t, creator, "Invite Club")

	invite, err := env.svc.InviteByEmail(ctx, creator, group.ID, domain.InviteByEmailRequest{
		Emails: "alice@example.com, bob@example.com",
	})
	if err != nil {
		t.Fatalf("failed to invite: %v", err)
	}
	if invite.Invited != 2 {
		t.Fatalf("expected 2 invitations, got %d", invite.Invited)
	}
	if len(env.notifier.joinURLs) != 2 {
		t.Fatalf("expected 2 invitation emails, got %d", len(env.notifier.joinURLs))
	}

	var invitation domain.Invitation
	if err := env.db.First(&invitation, "group_id = ?", snowflakeID(t, group.ID)).Error; err != nil {
		t.Fatalf("failed to load invitation: %v", err)
	}
	if len(invitation.SecretKey) != 32 {
		t.Fatalf("expected a 32-char secret key, got %q", invitation.SecretKey)
	}

	wantURL := "https://example.com/teams/join/" + invitation.SecretKey
	found := false
	for _, url := range env.notifier.joinURLs {
		if url == wantURL {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected join url %q among %v", wantURL, env.notifier.joinURLs)
	}

	redeem, err := env.svc.RedeemInvitation(ctx, invitee, invitation.SecretKey)
	if err != nil {
		t.Fatalf("failed to redeem: %v", err)
	}
	if !redeem.Valid {
		t.Fatal("expected a valid redemption")
	}
	if redeem.GroupID != group.ID {
		t.Fatalf("expected group %s, got %s", group.ID, redeem.GroupID)
	}

	detail, err := env.svc.Get(ctx, invitee, group.ID)
	if err != nil {
		t.Fatalf("failed to get group: %v", err)
	}
	if !detail.IsMember || detail.IsAdmin {
		t.Fatalf("expected plain membership from redemption, got member=%v admin=%v", detail.IsMember, detail.IsAdmin)
	}

	// The key is single-use.
	redeem, err = env.svc.RedeemInvitation(ctx, invitee, invitation.SecretKey)
	if err != nil {
		t.Fatalf("failed second redeem: %v", err)
	}
	if redeem.Valid {
		t.Fatal("expected a consumed key to be invalid")
	}
}

func TestRedeemUnknownKey(t *testing.T) {
	env := newTestEnv(t)
	user := env.node.Generate()

	redeem, err := env.svc.RedeemInvitation(context.Background(), user, "deadbeefdeadbeefdeadbeefdeadbeef")
	if err != nil {
		t.Fatalf("failed to redeem: %v", err)
	}
	if redeem.Valid {
		t.Fatal("expected an unknown key to be invalid, not an error")
	}
}

func TestInviteValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	outsider := env.node.Generate()

	group := env.createGroup(t, creator, "Guarded Club")

	if _, err := env.svc.InviteByEmail(ctx, outsider, group.ID, domain.InviteByEmailRequest{Emails: "x@example.com"}); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for outsider, got %v", err)
	}
	if _, err := env.svc.InviteByEmail(ctx, creator, group.ID, domain.InviteByEmailRequest{Emails: "not-an-email"}); err != domain.ErrInvalidEmail {
		t.Fatalf("expected invalid_email, got %v", err)
	}
	if _, err := env.svc.InviteByEmail(ctx, creator, group.ID, domain.InviteByEmailRequest{Emails: "  ,  "}); err != domain.ErrEmptyEmailList {
		t.Fatalf("expected empty_email_list, got %v", err)
	}
}

func TestListMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	member := env.node.Generate()

	group := env.createGroup(t, creator, "Roster Club")
	apply, err := env.svc.Apply(ctx, member, group.ID)
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}
	if _, err := env.svc.ApproveApplication(ctx, creator, group.ID, apply.ApplicationID); err != nil {
		t.Fatalf("failed to approve: %v", err)
	}

	members, err := env.svc.ListMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("failed to list members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	roles := make(map[string]string, len(members))
	for _, m := range members {
		roles[m.UserID] = m.Role
	}
	if roles[creator.String()] != domain.RoleAdmin {
		t.Fatalf("expected creator to be admin, got %q", roles[creator.String()])
	}
	if roles[member.String()] != domain.RoleMember {
		t.Fatalf("expected approved applicant to be member, got %q", roles[member.String()])
	}
}

func TestListInvitationsRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()
	outsider := env.node.Generate()

	group := env.createGroup(t, creator, "Pending Club")
	if _, err := env.svc.InviteByEmail(ctx, creator, group.ID, domain.InviteByEmailRequest{
		Emails: "alice@example.com",
	}); err != nil {
		t.Fatalf("failed to invite: %v", err)
	}

	if _, err := env.svc.ListInvitations(ctx, outsider, group.ID); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for outsider, got %v", err)
	}

	invitations, err := env.svc.ListInvitations(ctx, creator, group.ID)
	if err != nil {
		t.Fatalf("failed to list invitations: %v", err)
	}
	if len(invitations) != 1 || invitations[0].Email != "alice@example.com" {
		t.Fatalf("unexpected invitations: %+v", invitations)
	}
}

func TestListGroups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	creator := env.node.Generate()

	for i := 0; i < 3; i++ {
		env.createGroup(t, creator, fmt.Sprintf("Club %d", i))
		env.clk.Advance(time.Minute)
	}

	groups, err := env.svc.List(ctx, domain.ListGroupsRequest{})
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	// Newest first.
	if groups[0].Name != "Club 2" {
		t.Fatalf("expected newest group first, got %q", groups[0].Name)
	}

	groups, err = env.svc.List(ctx, domain.ListGroupsRequest{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("failed to list with paging: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Club 1" {
		t.Fatalf("unexpected page: %+v", groups)
	}
}

func snowflakeID(t *testing.T, raw string) snowflake.ID {
	t.Helper()
	id, err := snowflake.ParseString(raw)
	if err != nil {
		t.Fatalf("failed to parse id %q: %v", raw, err)
	}
	return id
}
