package models

type AccountKind string
type AccountStatus string
type Gender string
type ApplicationStatus string

const (
	AccountKindUser  AccountKind = "user"
	AccountKindAdmin AccountKind = "admin"

	AccountStatusActive AccountStatus = "active"
	AccountStatusBanned AccountStatus = "banned"

	GenderMale   Gender = "male"
	GenderFemale Gender = "female"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatusOwner - сентинел для check-apply: владелец вакансии
// никогда не имеет собственного отклика на нее.
const ApplicationStatusOwner = "owner"
