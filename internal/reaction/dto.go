package reaction

// Action 切换后的结果
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ToggleResponse 点赞/点踩结果
type ToggleResponse struct {
	Status string `json:"status"`
	Action Action `json:"action"`
}
