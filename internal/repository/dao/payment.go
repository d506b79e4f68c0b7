package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentTarget string

const (
	PaymentForOrder       PaymentTarget = "order"
	PaymentForReservation PaymentTarget = "reservation"
)

// Payment is one recorded (never charged) payment. The running total lives
// on the order or reservation as montant_paye; this is the ledger behind it.
type Payment struct {
	ID         uint            `gorm:"primaryKey"`
	HostID     uint            `gorm:"not null;index"`
	TargetType PaymentTarget   `gorm:"not null;index:idx_payment_target"`
	TargetID   uint            `gorm:"not null;index:idx_payment_target"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method     string
	CreatedAt  time.Time
}

func (Payment) TableName() string {
	return "payments"
}

func insertPayment(tx *gorm.DB, p Payment) error {
	return tx.Create(&p).Error
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{db: db}
}

func (d *PaymentDAO) FindByTarget(ctx context.Context, target PaymentTarget, id uint) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target, id).
		Order("created_at").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}
