package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"

	"kesif-backend/internal/domain"
)

// 验证码有效期（分钟）
const accessCodeTTLMinutes = 10

// PostgresAccessCodesRepository 一次性验证码Repository实现
type PostgresAccessCodesRepository struct {
	db *sql.DB
}

func NewPostgresAccessCodesRepository(db *sql.DB) *PostgresAccessCodesRepository {
	return &PostgresAccessCodesRepository{db: db}
}

var _ AccessCodesRepo = (*PostgresAccessCodesRepository)(nil)

// Issue 签发新验证码
// 同一 (email, purpose) 下的旧码一律先删除：新码签发即让旧码失效
func (r *PostgresAccessCodesRepository) Issue(ctx context.Context, email, purpose string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("%w: email", ErrMissingField)
	}
	if purpose != domain.CodePurposeLogin && purpose != domain.CodePurposePasswordReset {
		return "", fmt.Errorf("invalid access code purpose: %q", purpose)
	}

	code := randomDigits(6)

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM access_codes WHERE email = $1 AND purpose = $2`,
		email, purpose,
	); err != nil {
		return "", fmt.Errorf("invalidate old access codes: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO access_codes (email, code, purpose, is_used, expires_at, created_at)
		VALUES ($1, $2, $3, FALSE, NOW() + make_interval(mins => $4), NOW())
	`, email, code, purpose, accessCodeTTLMinutes); err != nil {
		return "", fmt.Errorf("insert access code: %w", err)
	}

	return code, nil
}

// Verify 校验并消费验证码
// 单条 UPDATE 完成匹配+置 used：未匹配（不存在/已用/过期/码不符）时零行受影响，无副作用
func (r *PostgresAccessCodesRepository) Verify(ctx context.Context, email, code, purpose string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE access_codes
		SET is_used = TRUE
		WHERE email = $1 AND code = $2 AND purpose = $3
		  AND is_used = FALSE AND expires_at > NOW()
	`, email, code, purpose)
	if err != nil {
		return false, fmt.Errorf("verify access code: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("verify access code: %w", err)
	}
	return n > 0, nil
}

// randomDigits 用 crypto/rand 生成 n 位数字串
func randomDigits(n int) string {
	const charset = "0123456789"
	out := make([]byte, n)
	for i := range out {
		idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		out[i] = charset[idx.Int64()]
	}
	return string(out)
}
