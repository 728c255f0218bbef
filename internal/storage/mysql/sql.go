package mysql

const upsertStateSQL = `
INSERT INTO review_state
  (source, review_id, approved, selected_for_web, tags)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  approved         = VALUES(approved),
  selected_for_web = VALUES(selected_for_web),
  tags             = VALUES(tags),
  updated_at       = CURRENT_TIMESTAMP
`

const loadStatesSQL = `
SELECT source, review_id, approved, selected_for_web, tags
FROM review_state
`

const insertCustomTagSQL = `
INSERT INTO custom_tags (id, name, color, description)
VALUES (?, ?, ?, ?)
`

const deleteCustomTagSQL = `
DELETE FROM custom_tags WHERE id = ?
`

const loadCustomTagsSQL = `
SELECT id, name, color, description
FROM custom_tags
ORDER BY created_at, id
`
