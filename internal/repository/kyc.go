package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cradoe/safetrain/internal/models"
	"github.com/jmoiron/sqlx"
)

var (
	ErrKycUpsert     = errors.New("kyc upsert failed")
	ErrAccountStatus = errors.New("account status update failed")
	ErrKycCommit     = errors.New("kyc commit failed")
)

type KycRepository interface {
	Submit(ctx context.Context, kyc *models.KYC) error
	GetByAccountID(ctx context.Context, accountID int64) (*models.KYC, bool, error)
}

type KycRepositoryImpl struct {
	db *sqlx.DB
}

func NewKycRepository(db *sqlx.DB) KycRepository {
	return &KycRepositoryImpl{db: db}
}

const upsertKycQuery = `
	INSERT INTO kyc (account_id, id_number, id_photo, id_type, address, proof_of_address, security_question, security_answer)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (account_id) DO UPDATE SET
		id_number = EXCLUDED.id_number,
		id_photo = EXCLUDED.id_photo,
		id_type = EXCLUDED.id_type,
		address = EXCLUDED.address,
		proof_of_address = EXCLUDED.proof_of_address,
		security_question = EXCLUDED.security_question,
		security_answer = EXCLUDED.security_answer,
		updated_at = NOW()`

const updateAccountStatusQuery = `UPDATE users SET status = $1 WHERE id = $2`

// Submit stores the KYC documents and marks the owning account as pending review.
// Both statements run in one transaction on a connection held exclusively until Submit returns:
// the transaction is rolled back after any failed step, and the connection is released on every path.
func (repo *KycRepositoryImpl) Submit(ctx context.Context, kyc *models.KYC) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	conn, err := repo.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, upsertKycQuery,
		kyc.AccountID,
		kyc.IDNumber,
		kyc.IDPhoto,
		kyc.IDType,
		kyc.Address,
		kyc.ProofOfAddress,
		kyc.SecurityQuestion,
		kyc.SecurityAnswer,
	)
	if err != nil {
		return rollback(tx, fmt.Errorf("%w: %w", ErrKycUpsert, err))
	}

	_, err = tx.ExecContext(ctx, updateAccountStatusQuery, UserAccountPendingStatus, kyc.AccountID)
	if err != nil {
		return rollback(tx, fmt.Errorf("%w: %w", ErrAccountStatus, err))
	}

	if err := tx.Commit(); err != nil {
		return rollback(tx, fmt.Errorf("%w: %w", ErrKycCommit, err))
	}

	return nil
}

func (repo *KycRepositoryImpl) GetByAccountID(ctx context.Context, accountID int64) (*models.KYC, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var kyc models.KYC

	query := `
		SELECT
			account_id,
			id_number,
			id_photo,
			id_type,
			address,
			proof_of_address,
			security_question,
			security_answer,
			created_at,
			updated_at
		FROM
			kyc
		WHERE
			account_id = $1`

	err := repo.db.GetContext(ctx, &kyc, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &kyc, true, nil
}

// rollback aborts tx and returns cause, joined with the rollback error if that failed too.
// After a failed commit the transaction is already closed and sql.ErrTxDone is expected.
func rollback(tx *sqlx.Tx, cause error) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errors.Join(cause, fmt.Errorf("rollback: %w", err))
	}

	return cause
}
