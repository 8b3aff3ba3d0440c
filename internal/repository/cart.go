package repository

import (
	"context"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *PostgresStore) ListCartLines(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&lines).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return lines, nil
}

func (s *PostgresStore) GetCartLine(ctx context.Context, id uint) (*domain.CartLine, error) {
	var line domain.CartLine
	if err := s.db.WithContext(ctx).First(&line, id).Error; err != nil {
		return nil, lookupErr(err, "cart line", id)
	}
	return &line, nil
}

// AddCartLine relies on the (user_id, product_id) unique index: the
// upsert adds quantities and takes the incoming use_points.
func (s *PostgresStore) AddCartLine(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	row := *line
	row.ID = 0

	var merged domain.CartLine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
				"use_points": gorm.Expr("excluded.use_points"),
			}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ? AND product_id = ?", line.UserID, line.ProductID).First(&merged).Error
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &merged, nil
}

func (s *PostgresStore) UpdateCartLine(ctx context.Context, id uint, patch domain.CartLinePatch) (*domain.CartLine, error) {
	var line domain.CartLine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate).First(&line, id).Error; err != nil {
			return lookupErr(err, "cart line", id)
		}
		updates := map[string]interface{}{}
		if patch.Quantity != nil {
			updates["quantity"] = *patch.Quantity
			line.Quantity = *patch.Quantity
		}
		if patch.UsePoints != nil {
			updates["use_points"] = *patch.UsePoints
			line.UsePoints = *patch.UsePoints
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&domain.CartLine{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, passThrough(err)
	}
	return &line, nil
}

func (s *PostgresStore) DeleteCartLine(ctx context.Context, id uint) (bool, error) {
	return deleteByID(s.db.WithContext(ctx), &domain.CartLine{}, id)
}

func (s *PostgresStore) ClearCart(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartLine{}).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}
