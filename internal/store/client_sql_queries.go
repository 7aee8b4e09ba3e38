package store

const (
	getBinding = `SELECT local_path, vault_id, vault_name, bound_user_id, device_id, bound_at
		FROM vault_bindings
		WHERE local_path = ?;`

	saveBinding = `INSERT INTO vault_bindings (local_path, vault_id, vault_name, bound_user_id, device_id, bound_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (local_path) DO UPDATE SET
			vault_id = excluded.vault_id,
			vault_name = excluded.vault_name,
			bound_user_id = excluded.bound_user_id,
			device_id = excluded.device_id,
			bound_at = excluded.bound_at;`

	deleteBinding = `DELETE FROM vault_bindings WHERE local_path = ?;`

	getKV = `SELECT value FROM kv_store WHERE key = ?;`

	putKV = `INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`

	deleteKV = `DELETE FROM kv_store WHERE key = ?;`
)
