package migration

import (
	"github.com/smallbiznis/usergroups/internal/config"
	groupdomain "github.com/smallbiznis/usergroups/internal/group/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		// The embedded migrations target postgres; other dialects fall
		// back to gorm's schema sync.
		if cfg.DBType != "postgres" {
			log.Info("skipping sql migrations, using automigrate", zap.String("db_type", cfg.DBType))
			return conn.AutoMigrate(
				&groupdomain.Group{},
				&groupdomain.GroupMember{},
				&groupdomain.Application{},
				&groupdomain.Invitation{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
