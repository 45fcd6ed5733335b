package chat

import (
	"context"

	"cups-server/internal/adapter/repository"
	"cups-server/internal/domain/model"
	"cups-server/internal/domain/provider"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// gormProvisioner stores chat records in the primary database. It joins the
// caller's transaction when one is carried in the context, so chat rows
// created for a task never outlive a rolled-back task insert.
type gormProvisioner struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormProvisioner creates a database-backed ChatProvisioner.
func NewGormProvisioner(db *gorm.DB, logger *zap.Logger) provider.ChatProvisioner {
	return &gormProvisioner{db: db, logger: logger}
}

func (p *gormProvisioner) conn(ctx context.Context) *gorm.DB {
	if tx, ok := repository.TxFromContext(ctx); ok {
		return tx
	}
	return p.db.WithContext(ctx)
}

func (p *gormProvisioner) CreateChat(ctx context.Context, taskID int64, memberIDs []int64) (int64, error) {
	db := p.conn(ctx)

	chat := &model.Chat{TaskID: taskID, Active: true}
	if err := db.Create(chat).Error; err != nil {
		p.logger.Error("Failed to create chat", zap.Int64("task_id", taskID), zap.Error(err))
		return 0, errors.Storage("failed to create chat", err)
	}

	if len(memberIDs) > 0 {
		members := make([]*model.ChatMember, 0, len(memberIDs))
		for _, userID := range memberIDs {
			members = append(members, &model.ChatMember{ChatID: chat.ID, UserID: userID})
		}
		if err := db.Create(&members).Error; err != nil {
			p.logger.Error("Failed to add chat members", zap.Int64("chat_id", chat.ID), zap.Error(err))
			return 0, errors.Storage("failed to add chat members", err)
		}
	}

	p.logger.Info("Chat provisioned",
		zap.Int64("chat_id", chat.ID),
		zap.Int64("task_id", taskID),
		zap.Int("members", len(memberIDs)))

	return chat.ID, nil
}

func (p *gormProvisioner) DeactivateChat(ctx context.Context, chatID int64) error {
	err := p.conn(ctx).Model(&model.Chat{}).
		Where("id = ?", chatID).
		Update("active", false).Error
	if err != nil {
		p.logger.Error("Failed to deactivate chat", zap.Int64("chat_id", chatID), zap.Error(err))
		return errors.Storage("failed to deactivate chat", err)
	}
	return nil
}

func (p *gormProvisioner) RemoveChat(ctx context.Context, chatID int64) error {
	db := p.conn(ctx)

	err := db.Where("chat_id = ?", chatID).Delete(&model.ChatMember{}).Error
	if err != nil {
		p.logger.Error("Failed to remove chat members", zap.Int64("chat_id", chatID), zap.Error(err))
		return errors.Storage("failed to remove chat members", err)
	}

	err = db.Delete(&model.Chat{}, chatID).Error
	if err != nil {
		p.logger.Error("Failed to remove chat", zap.Int64("chat_id", chatID), zap.Error(err))
		return errors.Storage("failed to remove chat", err)
	}
	return nil
}
