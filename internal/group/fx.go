package group

import (
	"github.com/smallbiznis/usergroups/internal/config"
	"github.com/smallbiznis/usergroups/internal/group/domain"
	"github.com/smallbiznis/usergroups/internal/group/event"
	"github.com/smallbiznis/usergroups/internal/group/repository"
	"github.com/smallbiznis/usergroups/internal/group/service"
	"github.com/smallbiznis/usergroups/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("group.service",
	fx.Provide(newKind),
	fx.Provide(repository.NewRepository),
	fx.Provide(newNotifier),
	fx.Provide(service.NewService),
)

func newKind(cfg config.Config) domain.Kind {
	return domain.Kind{
		Slug:              cfg.GroupKind,
		InviteURLTemplate: cfg.InviteURLTemplate,
	}
}

func newNotifier(provider email.Provider, log *zap.Logger) event.Notifier {
	return event.NewEmailNotifier(provider, log)
}
