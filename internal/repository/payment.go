package repository

import (
	"context"
	"fmt"

	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
)

type PaymentDAO interface {
	FindByTarget(ctx context.Context, target dao.PaymentTarget, id uint) ([]dao.Payment, error)
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{dao: dao}
}

func (r *PaymentRepository) FindByTarget(ctx context.Context, target domain.PaymentTarget, id uint) ([]domain.Payment, error) {
	found, err := r.dao.FindByTarget(ctx, dao.PaymentTarget(target), id)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTarget -> %w", err)
	}

	payments := make([]domain.Payment, 0, len(found))
	for _, p := range found {
		payments = append(payments, domain.Payment{
			ID:         p.ID,
			HostID:     p.HostID,
			TargetType: domain.PaymentTarget(p.TargetType),
			TargetID:   p.TargetID,
			Amount:     p.Amount,
			Method:     p.Method,
			CreatedAt:  p.CreatedAt,
		})
	}
	return payments, nil
}
