package repository

import (
	"database/sql"

	entity "campusx/internal/domain"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(user *entity.User) error
	GetByID(id uuid.UUID) (*entity.User, error)
	GetByUsername(username string) (*entity.User, string, error)
	GetByEmail(email string) (*entity.User, error)
	GetRoleName(roleID uuid.UUID) (string, error)
	GetRoleIDByName(name string) (uuid.UUID, error)
	ListUsers(limit, offset int) ([]entity.User, error)
	SetActive(id uuid.UUID, active bool) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, full_name, password_hash, role_id, line_user_id, is_active, created_at, updated_at`

func (r *userRepository) CreateUser(user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, full_name, password_hash, role_id, line_user_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(query,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		user.RoleID, user.LineUserID, user.IsActive,
	)
	return err
}

func (r *userRepository) scanUser(row *sql.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash,
		&user.RoleID, &user.LineUserID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(id uuid.UUID) (*entity.User, error) {
	return r.scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByUsername(username string) (*entity.User, string, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.password_hash, u.role_id, u.line_user_id, u.is_active, u.created_at, u.updated_at, r.name
		FROM users u JOIN roles r ON r.id = u.role_id
		WHERE u.username = $1
	`
	var user entity.User
	var roleName string
	err := r.db.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash,
		&user.RoleID, &user.LineUserID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		&roleName,
	)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &user, roleName, nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	return r.scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetRoleName(roleID uuid.UUID) (string, error) {
	var name string
	err := r.db.QueryRow(`SELECT name FROM roles WHERE id = $1`, roleID).Scan(&name)
	return name, err
}

func (r *userRepository) GetRoleIDByName(name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(`SELECT id FROM roles WHERE name = $1`, name).Scan(&id)
	return id, err
}

func (r *userRepository) ListUsers(limit, offset int) ([]entity.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.Query(`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash,
			&user.RoleID, &user.LineUserID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) SetActive(id uuid.UUID, active bool) error {
	_, err := r.db.Exec(`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	return err
}
