package mysql

// Table names are whitelisted in tableFor before being interpolated here;
// values always travel as placeholders.

const listDocsSQL = "SELECT id, doc FROM %s"

const getDocSQL = "SELECT doc FROM %s WHERE id = ?"

const upsertDocSQL = `
INSERT INTO %s (id, doc)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  doc        = VALUES(doc),
  updated_at = CURRENT_TIMESTAMP
`
