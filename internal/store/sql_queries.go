package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	findVaultByOwnerAndName = `SELECT vault_id, owner_id, name, used_bytes, created_at
		FROM vaults
		WHERE owner_id = $1 AND name = $2;`

	createVault = `INSERT INTO vaults (vault_id, owner_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, name) DO NOTHING;`

	getVaultByID = `SELECT vault_id, owner_id, name, used_bytes, created_at
		FROM vaults
		WHERE vault_id = $1;`

	addVaultUsedBytes = `UPDATE vaults
		SET used_bytes = GREATEST(used_bytes + $2, 0)
		WHERE vault_id = $1;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var vaultFileColumns = []string{"path", "hash", "vector_clock", "mtime", "size", "deleted"}

func buildListFilesQuery(vaultID string, paths []string) (string, []any, error) {
	q := psql.Select(vaultFileColumns...).
		From("vault_files").
		Where(sq.Eq{"vault_id": vaultID}).
		OrderBy("path")

	if len(paths) > 0 {
		q = q.Where(sq.Eq{"path": paths})
	}

	return q.ToSql()
}

func buildUpsertFileQuery(vaultID, path, hash string, clock []byte, mtime int64, size *int64, deleted bool) (string, []any, error) {
	return psql.Insert("vault_files").
		Columns("vault_id", "path", "hash", "vector_clock", "mtime", "size", "deleted", "updated_at").
		Values(vaultID, path, hash, clock, mtime, size, deleted, sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (vault_id, path) DO UPDATE SET
			hash = EXCLUDED.hash,
			vector_clock = EXCLUDED.vector_clock,
			mtime = EXCLUDED.mtime,
			size = EXCLUDED.size,
			deleted = EXCLUDED.deleted,
			updated_at = NOW()`).
		ToSql()
}
