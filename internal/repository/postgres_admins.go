package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kesif-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 成本与线上一致
const bcryptCost = 12

// PostgresAdminsRepository 管理员Repository实现
type PostgresAdminsRepository struct {
	db *sql.DB
}

func NewPostgresAdminsRepository(db *sql.DB) *PostgresAdminsRepository {
	return &PostgresAdminsRepository{db: db}
}

var _ AdminsRepo = (*PostgresAdminsRepository)(nil)

const adminColumns = `id, username, email, password_hash, full_name, role, is_active, last_login, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (*domain.AdminUser, error) {
	var u domain.AdminUser
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Role, &u.Active, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

// GetByEmail 按邮箱获取 active 管理员；未找到返回 (nil, nil)
func (r *PostgresAdminsRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE email = $1 AND is_active = TRUE`, email)
	u, err := scanAdmin(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query admin user: %w", err)
	}
	return u, nil
}

// VerifyCredentials bcrypt 校验；成功时刷新 last_login
func (r *PostgresAdminsRepository) VerifyCredentials(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET last_login = NOW() WHERE id = $1`, u.ID,
	); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	return u, nil
}

// List 全部管理员（含停用的，后台管理页需要）
func (r *PostgresAdminsRepository) List(ctx context.Context) ([]domain.AdminUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query admin users: %w", err)
	}
	defer rows.Close()

	items := make([]domain.AdminUser, 0)
	for rows.Next() {
		u, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin user: %w", err)
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

// Create 插入管理员，密码 bcrypt 哈希后入库
func (r *PostgresAdminsRepository) Create(ctx context.Context, in NewAdminUser) (int64, error) {
	if in.Username == "" {
		return 0, fmt.Errorf("%w: username", ErrMissingField)
	}
	if in.Email == "" {
		return 0, fmt.Errorf("%w: email", ErrMissingField)
	}
	if in.Password == "" {
		return 0, fmt.Errorf("%w: password", ErrMissingField)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (username, email, password_hash, full_name, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
		RETURNING id
	`, in.Username, in.Email, string(hash), in.FullName, role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert admin user: %w", err)
	}
	return id, nil
}

// Update 稀疏更新
func (r *PostgresAdminsRepository) Update(ctx context.Context, id int64, patch AdminUserPatch) error {
	b := newUpdateBuilder(2)
	if patch.Username != nil {
		b.Set("username", *patch.Username)
	}
	if patch.Email != nil {
		b.Set("email", *patch.Email)
	}
	if patch.FullName != nil {
		b.Set("full_name", *patch.FullName)
	}
	if patch.Role != nil {
		b.Set("role", *patch.Role)
	}
	if patch.Active != nil {
		b.Set("is_active", *patch.Active)
	}
	if b.Empty() {
		return ErrNoFields
	}

	query := fmt.Sprintf(`
		UPDATE admin_users
		SET %s, updated_at = NOW()
		WHERE id = $1
	`, b.Assignments())

	result, err := r.db.ExecContext(ctx, query, append([]any{id}, b.Args()...)...)
	if err != nil {
		return fmt.Errorf("update admin user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ChangePassword 重新哈希后覆盖
func (r *PostgresAdminsRepository) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password", ErrMissingField)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, string(hash))
	if err != nil {
		return fmt.Errorf("change admin password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete 停用管理员
func (r *PostgresAdminsRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete admin user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
