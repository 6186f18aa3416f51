package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"campusboard/internal/board"
)

// uniqueViolation 是 PostgreSQL 唯一约束冲突的 SQLSTATE。
const uniqueViolation = "23505"

// translate 将驱动层错误归一为核心层的哨兵错误。
// GORM 开启 TranslateError 时冲突已是 ErrDuplicatedKey，
// pgconn 分支兜底未经翻译的原生 PostgreSQL 错误。
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return board.ErrNoRecord
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return board.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return board.ErrDuplicate
	}
	return err
}
