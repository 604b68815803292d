package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gitlab.tepseg.com/ai/lol-accounts/internal/model"
)

type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Account, error)
	FindAll(ctx context.Context) ([]model.Account, error)
	Create(ctx context.Context, params model.CreateAccountParams) (*model.Account, error)
	// UpdateRankedStats writes the four derived display fields together;
	// they are never written independently.
	UpdateRankedStats(ctx context.Context, id int64, rank, lp, winRate, imageSrc string) (*model.Account, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) AccountRepository
}

type accountRepo struct {
	db sqlxDB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) WithTx(tx *sqlx.Tx) AccountRepository {
	return &accountRepo{db: tx}
}

func (r *accountRepo) FindByID(ctx context.Context, id int64) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, `
		SELECT * FROM accounts WHERE id = $1
	`, id)
	return HandleNotFound(&account, err)
}

func (r *accountRepo) FindAll(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.SelectContext(ctx, &accounts, `
		SELECT * FROM accounts
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepo) Create(ctx context.Context, params model.CreateAccountParams) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, `
		INSERT INTO accounts (login, riot_id, region, password, rank, lp, win_rate, image_src)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	`, params.Login, params.RiotID, params.Region, params.Password,
		params.Rank, params.LP, params.WinRate, params.ImageSrc)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) UpdateRankedStats(ctx context.Context, id int64, rank, lp, winRate, imageSrc string) (*model.Account, error) {
	var account model.Account
	err := r.db.GetContext(ctx, &account, `
		UPDATE accounts SET
			rank = $2,
			lp = $3,
			win_rate = $4,
			image_src = $5
		WHERE id = $1
		RETURNING *
	`, id, rank, lp, winRate, imageSrc)
	return HandleNotFound(&account, err)
}

func (r *accountRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}

func (r *accountRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accounts`)
	return count, err
}
