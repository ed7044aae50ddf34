package event

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/usergroups/internal/group/domain"
	"github.com/smallbiznis/usergroups/internal/providers/email"
	"go.uber.org/zap"
)

// Notifier receives workflow side-effect events. Implementations must
// be best-effort: a failed notification never fails the operation that
// emitted it.
type Notifier interface {
	ApplicationReceived(ctx context.Context, group domain.Group, application domain.Application, adminIDs []snowflake.ID)
	ApplicationApproved(ctx context.Context, group domain.Group, applicantID snowflake.ID)
	InvitationCreated(ctx context.Context, group domain.Group, invitation domain.Invitation, joinURL string)
}

type NoopNotifier struct{}

func (NoopNotifier) ApplicationReceived(ctx context.Context, group domain.Group, application domain.Application, adminIDs []snowflake.ID) {
}

func (NoopNotifier) ApplicationApproved(ctx context.Context, group domain.Group, applicantID snowflake.ID) {
}

func (NoopNotifier) InvitationCreated(ctx context.Context, group domain.Group, invitation domain.Invitation, joinURL string) {
}

// EmailNotifier sends invitation emails and logs application events for
// the host's notification collaborator to pick up. User ids cannot be
// resolved to addresses here; the host owns the user directory.
type EmailNotifier struct {
	provider email.Provider
	log      *zap.Logger
}

func NewEmailNotifier(provider email.Provider, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{provider: provider, log: log}
}

func (n *EmailNotifier) ApplicationReceived(ctx context.Context, group domain.Group, application domain.Application, adminIDs []snowflake.ID) {
	n.log.Info("application_received",
		zap.String("group_id", group.ID.String()),
		zap.String("application_id", application.ID.String()),
		zap.String("applicant_id", application.UserID.String()),
		zap.Int("admins", len(adminIDs)),
	)
}

func (n *EmailNotifier) ApplicationApproved(ctx context.Context, group domain.Group, applicantID snowflake.ID) {
	n.log.Info("application_approved",
		zap.String("group_id", group.ID.String()),
		zap.String("applicant_id", applicantID.String()),
	)
}

func (n *EmailNotifier) InvitationCreated(ctx context.Context, group domain.Group, invitation domain.Invitation, joinURL string) {
	subject := fmt.Sprintf("You have been invited to join %s", group.Name)
	body := fmt.Sprintf(
		"<p>You have been invited to join <strong>%s</strong>.</p><p><a href=%q>Accept the invitation</a></p>",
		group.Name, joinURL,
	)

	if err := n.provider.Send(ctx, []string{invitation.Email}, subject, body); err != nil {
		n.log.Warn("failed to send invitation email",
			zap.String("group_id", group.ID.String()),
			zap.String("invitation_id", invitation.ID.String()),
			zap.Error(err),
		)
		return
	}

	n.log.Info("invitation_created",
		zap.String("group_id", group.ID.String()),
		zap.String("invitation_id", invitation.ID.String()),
	)
}
