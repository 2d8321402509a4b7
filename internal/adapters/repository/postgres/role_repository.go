package postgres

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
	pgdb "github.com/ogurasousui/careerpath-grpc-clean-arch/internal/platform/db/postgres"
)

// RoleRepository は PostgreSQL を利用した役職参照の実装です。
type RoleRepository struct {
	pool pgdb.Queryer
}

// NewRoleRepository は RoleRepository を生成します。
func NewRoleRepository(pool pgdb.Queryer) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// List は全役職を階層レベル・役職名の昇順で返します。
func (r *RoleRepository) List(ctx context.Context) ([]*role.Role, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, title, level, hierarchy_level, description
          FROM roles
         ORDER BY hierarchy_level ASC, title ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]*role.Role, 0)
	for rows.Next() {
		found, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

func scanRole(row pgx.Row) (*role.Role, error) {
	var (
		id             string
		title          string
		level          string
		hierarchyLevel int
		description    sql.NullString
	)

	if err := row.Scan(&id, &title, &level, &hierarchyLevel, &description); err != nil {
		return nil, err
	}

	return &role.Role{
		ID:             id,
		Title:          title,
		Level:          level,
		HierarchyLevel: hierarchyLevel,
		Description:    nullableString(description),
	}, nil
}
