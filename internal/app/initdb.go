package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/pkg/common"
)

func (a *Application) checkSuper() {
	const superEmail = "admin@workshop.local"
	const defaultPassword = "workshop"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.Operator
	err := a.gormDB.Where("email = ?", superEmail).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.Operator{
			ID:        common.UUIDint64(),
			FullName:  "administrator",
			Email:     superEmail,
			Password:  hashedPassword,
			Role:      domain.OperatorRoleAdmin,
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("email", superEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetRole := !strings.EqualFold(operator.Role, domain.OperatorRoleAdmin)
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetRole && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetRole {
		updates["role"] = domain.OperatorRoleAdmin
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.Operator{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("email", superEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("roleReset", resetRole),
		zap.Bool("statusEnabled", resetStatus))
}
