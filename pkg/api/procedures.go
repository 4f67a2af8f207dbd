package api

const (
	// AuthServiceName is the fully-qualified name of the auth service.
	AuthServiceName = "rigbudget.v1.AuthService"
	// ChecklistServiceName is the fully-qualified name of the checklist service.
	ChecklistServiceName = "rigbudget.v1.ChecklistService"
)

const (
	AuthServiceSignUpProcedure      = "/rigbudget.v1.AuthService/SignUp"
	AuthServiceSignInProcedure      = "/rigbudget.v1.AuthService/SignIn"
	AuthServiceSignOutProcedure     = "/rigbudget.v1.AuthService/SignOut"
	AuthServiceCurrentUserProcedure = "/rigbudget.v1.AuthService/CurrentUser"

	ChecklistServiceGetChecklistProcedure  = "/rigbudget.v1.ChecklistService/GetChecklist"
	ChecklistServiceSaveChecklistProcedure = "/rigbudget.v1.ChecklistService/SaveChecklist"
	ChecklistServiceSaveBudgetProcedure    = "/rigbudget.v1.ChecklistService/SaveBudget"
)
