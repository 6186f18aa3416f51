package board

import "campusboard/internal/database"

// Actor 表示一次操作的发起者（从认证会话解析得到）。
type Actor struct {
	ID   uint
	Role database.Role
}

// Action 枚举访问策略覆盖的操作。
type Action string

const (
	ActionJobCreate  Action = "job.create"
	ActionJobUpdate  Action = "job.update"
	ActionJobDelete  Action = "job.delete"
	ActionJobApprove Action = "job.approve"
	ActionJobReject  Action = "job.reject"
	ActionJobListAll Action = "job.list_all"

	ActionApplicationSubmit     Action = "application.submit"
	ActionApplicationListForJob Action = "application.list_for_job"
	ActionApplicationListOwn    Action = "application.list_own"
	ActionApplicationReview     Action = "application.review"

	ActionUserList         Action = "user.list"
	ActionUserUpdateStatus Action = "user.update_status"
)

// Resource 描述被操作资源的归属。OwnerID 为零值表示操作不涉及归属。
type Resource struct {
	OwnerID uint
}

// Authorize 是纯函数形式的访问策略：(角色, 操作, 归属) → 允许/拒绝。
// 未显式允许的组合一律拒绝；拒绝以 Unauthorized 错误返回，从不 panic。
func Authorize(actor Actor, action Action, res Resource) error {
	if allowed(actor, action, res) {
		return nil
	}
	return NewError(KindUnauthorized, "operation not permitted for this role")
}

func allowed(actor Actor, action Action, res Resource) bool {
	switch actor.Role {
	case database.RoleAdmin:
		// 管理员拥有全部审核类操作，但不能代替雇主管理岗位内容。
		switch action {
		case ActionJobApprove, ActionJobReject, ActionJobListAll,
			ActionUserList, ActionUserUpdateStatus:
			return true
		}
	case database.RoleEmployer:
		switch action {
		case ActionJobCreate:
			return true
		case ActionJobUpdate, ActionJobDelete,
			ActionApplicationListForJob, ActionApplicationReview:
			return res.OwnerID != 0 && res.OwnerID == actor.ID
		}
	case database.RoleStudent:
		switch action {
		case ActionApplicationSubmit, ActionApplicationListOwn:
			return true
		}
	}
	return false
}
