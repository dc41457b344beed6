package utils

import (
	"errors"

	"github.com/nikhil-742/ShopNest/models"
	"gorm.io/gorm"
)

// Wallet operation failures.
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrBalanceCapExceeded  = errors.New("credit would exceed the wallet balance limit")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// GetOrCreateWallet fetches the user's wallet, creating an empty one on
// first use.
func GetOrCreateWallet(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Where("user_id = ?", userID).
		FirstOrCreate(&wallet, models.Wallet{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// CheckCredit validates a credit against the balance cap without writing.
func CheckCredit(balance, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if balance+amount > MaxWalletBalance {
		return ErrBalanceCapExceeded
	}
	return nil
}

// CheckDebit validates a debit against the current balance without writing.
func CheckDebit(balance, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if balance < amount {
		return ErrInsufficientBalance
	}
	return nil
}

// CreditWallet adds funds and records a transaction. The balance cap is
// enforced in the UPDATE's WHERE clause so concurrent credits cannot push
// the balance past the limit between a check and a write.
func CreditWallet(tx *gorm.DB, wallet *models.Wallet, amount float64, description string, orderID *uint) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	res := tx.Model(&models.Wallet{}).
		Where("id = ? AND balance + ? <= ?", wallet.ID, amount, MaxWalletBalance).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBalanceCapExceeded
	}
	wallet.Balance = Round2(wallet.Balance + amount)

	return tx.Create(&models.WalletTransaction{
		WalletID:    wallet.ID,
		Amount:      Round2(amount),
		Type:        models.TransactionTypeCredit,
		Description: description,
		OrderID:     orderID,
	}).Error
}

// DebitWallet removes funds and records a transaction with a negative
// amount. Guarded the same way as CreditWallet so the balance never goes
// below zero under concurrency.
func DebitWallet(tx *gorm.DB, wallet *models.Wallet, amount float64, description string, orderID *uint) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	res := tx.Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", wallet.ID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	wallet.Balance = Round2(wallet.Balance - amount)

	return tx.Create(&models.WalletTransaction{
		WalletID:    wallet.ID,
		Amount:      Round2(-amount),
		Type:        models.TransactionTypeDebit,
		Description: description,
		OrderID:     orderID,
	}).Error
}
