package constants

// CaseStage 商机阶段, 固定管道顺序 LEAD → QUALIFIED → PROPOSAL → NEGOTIATION → WON/LOST
// WON/LOST 为终态。服务端不强制顺序推进, 任意阶段可直接设置(转换除外, 转换强制置为WON)
const (
	CaseStageLead        = "LEAD"
	CaseStageQualified   = "QUALIFIED"
	CaseStageProposal    = "PROPOSAL"
	CaseStageNegotiation = "NEGOTIATION"
	CaseStageWon         = "WON"
	CaseStageLost        = "LOST"
)

// CaseStageSequence 管道顺序, 仅供客户端展示推进提示
var CaseStageSequence = []string{
	CaseStageLead,
	CaseStageQualified,
	CaseStageProposal,
	CaseStageNegotiation,
	CaseStageWon,
	CaseStageLost,
}

var caseStageSet = map[string]struct{}{
	CaseStageLead:        {},
	CaseStageQualified:   {},
	CaseStageProposal:    {},
	CaseStageNegotiation: {},
	CaseStageWon:         {},
	CaseStageLost:        {},
}

// IsValidCaseStage 校验商机阶段取值
func IsValidCaseStage(stage string) bool {
	_, ok := caseStageSet[stage]
	return ok
}

// IssueStatus 事项状态
const (
	IssueStatusToDo       = "TO_DO"
	IssueStatusInProgress = "IN_PROGRESS"
	IssueStatusInReview   = "IN_REVIEW"
	IssueStatusBlocked    = "BLOCKED"
	IssueStatusDone       = "DONE"
)

var issueStatusSet = map[string]struct{}{
	IssueStatusToDo:       {},
	IssueStatusInProgress: {},
	IssueStatusInReview:   {},
	IssueStatusBlocked:    {},
	IssueStatusDone:       {},
}

// IsValidIssueStatus 校验事项状态取值
func IsValidIssueStatus(status string) bool {
	_, ok := issueStatusSet[status]
	return ok
}

// IssuePriority 事项优先级
const (
	IssuePriorityLow    = "LOW"
	IssuePriorityMedium = "MEDIUM"
	IssuePriorityHigh   = "HIGH"
	IssuePriorityUrgent = "URGENT"
)

var issuePrioritySet = map[string]struct{}{
	IssuePriorityLow:    {},
	IssuePriorityMedium: {},
	IssuePriorityHigh:   {},
	IssuePriorityUrgent: {},
}

// IsValidIssuePriority 校验事项优先级取值
func IsValidIssuePriority(priority string) bool {
	_, ok := issuePrioritySet[priority]
	return ok
}

// IssueType 事项类型
const (
	IssueTypeFeature = "FEATURE"
	IssueTypeTask    = "TASK"
	IssueTypeBug     = "BUG"
	IssueTypeChore   = "CHORE"
)

var issueTypeSet = map[string]struct{}{
	IssueTypeFeature: {},
	IssueTypeTask:    {},
	IssueTypeBug:     {},
	IssueTypeChore:   {},
}

// IsValidIssueType 校验事项类型取值
func IsValidIssueType(issueType string) bool {
	_, ok := issueTypeSet[issueType]
	return ok
}

// SprintStatus 迭代状态
const (
	SprintStatusPlanned   = "PLANNED"
	SprintStatusActive    = "ACTIVE"
	SprintStatusCompleted = "COMPLETED"
)

var sprintStatusSet = map[string]struct{}{
	SprintStatusPlanned:   {},
	SprintStatusActive:    {},
	SprintStatusCompleted: {},
}

// IsValidSprintStatus 校验迭代状态取值
func IsValidSprintStatus(status string) bool {
	_, ok := sprintStatusSet[status]
	return ok
}

// 项目内角色(区别于系统角色, 仅表示成员在项目中的职责)
const (
	ProjectRoleManager = "manager"
	ProjectRoleMember  = "member"
)

// 认证类型
const (
	AuthTypeLDAP  = "ldap"
	AuthTypeLocal = "local"
)

// JWT 相关
const (
	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)

// SessionContextKey 中间件写入gin context的会话key
const SessionContextKey = "session"

// MinPasswordLength 密码最小长度
const MinPasswordLength = 8
