package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// UnitOfWork はリポジトリ群と、1回のコミットで終わるトランザクションを束ねます。
type UnitOfWork interface {
	Tasks() TaskRepository
	Categories() CategoryRepository
	Users() UserRepository
	// Do は fn をトランザクション内で実行します。fn には同じトランザクションを共有する
	// UnitOfWork が渡されるので、fn の中では必ずそれを使うこと。
	Do(ctx context.Context, fn func(UnitOfWork) error) error
}

// SQLUnitOfWork は sqlx.DB または sqlx.Tx の上に構築されます。
type SQLUnitOfWork struct {
	db  *sqlx.DB
	tx  *sqlx.Tx
	ext sqlx.ExtContext
}

var _ UnitOfWork = (*SQLUnitOfWork)(nil)

// NewUnitOfWork は新しいSQLUnitOfWorkを作成します。
func NewUnitOfWork(db *sqlx.DB) *SQLUnitOfWork {
	return &SQLUnitOfWork{db: db, ext: db}
}

func (u *SQLUnitOfWork) Tasks() TaskRepository {
	return NewTaskRepository(u.ext)
}

func (u *SQLUnitOfWork) Categories() CategoryRepository {
	return NewCategoryRepository(u.ext)
}

func (u *SQLUnitOfWork) Users() UserRepository {
	return NewUserRepository(u.ext)
}

func (u *SQLUnitOfWork) Do(ctx context.Context, fn func(UnitOfWork) error) error {
	// 既にトランザクション内なら入れ子にしない
	if u.tx != nil {
		return fn(u)
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(&SQLUnitOfWork{db: u.db, tx: tx, ext: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zap.L().Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
