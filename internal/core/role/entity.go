package role

// Role は役職エンティティです。Title は全役職で一意です。
type Role struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Level          string  `json:"level"`
	HierarchyLevel int     `json:"hierarchyLevel"`
	Description    *string `json:"description,omitempty"`
}
