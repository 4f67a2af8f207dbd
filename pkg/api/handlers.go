package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AuthServiceHandler is implemented by the server side of the auth service.
type AuthServiceHandler interface {
	SignUp(context.Context, *connect.Request[SignUpRequest]) (*connect.Response[SignUpResponse], error)
	SignIn(context.Context, *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error)
	SignOut(context.Context, *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error)
	CurrentUser(context.Context, *connect.Request[CurrentUserRequest]) (*connect.Response[CurrentUserResponse], error)
}

// ChecklistServiceHandler is implemented by the server side of the checklist service.
type ChecklistServiceHandler interface {
	GetChecklist(context.Context, *connect.Request[GetChecklistRequest]) (*connect.Response[GetChecklistResponse], error)
	SaveChecklist(context.Context, *connect.Request[SaveChecklistRequest]) (*connect.Response[SaveChecklistResponse], error)
	SaveBudget(context.Context, *connect.Request[SaveBudgetRequest]) (*connect.Response[SaveBudgetResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for the auth service and
// returns the path prefix to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	signUp := connect.NewUnaryHandler(AuthServiceSignUpProcedure, svc.SignUp, opts...)
	signIn := connect.NewUnaryHandler(AuthServiceSignInProcedure, svc.SignIn, opts...)
	signOut := connect.NewUnaryHandler(AuthServiceSignOutProcedure, svc.SignOut, opts...)
	currentUser := connect.NewUnaryHandler(AuthServiceCurrentUserProcedure, svc.CurrentUser, opts...)

	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceSignUpProcedure:
			signUp.ServeHTTP(w, r)
		case AuthServiceSignInProcedure:
			signIn.ServeHTTP(w, r)
		case AuthServiceSignOutProcedure:
			signOut.ServeHTTP(w, r)
		case AuthServiceCurrentUserProcedure:
			currentUser.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewChecklistServiceHandler builds an HTTP handler for the checklist
// service and returns the path prefix to mount it on.
func NewChecklistServiceHandler(svc ChecklistServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	getChecklist := connect.NewUnaryHandler(ChecklistServiceGetChecklistProcedure, svc.GetChecklist, opts...)
	saveChecklist := connect.NewUnaryHandler(ChecklistServiceSaveChecklistProcedure, svc.SaveChecklist, opts...)
	saveBudget := connect.NewUnaryHandler(ChecklistServiceSaveBudgetProcedure, svc.SaveBudget, opts...)

	return "/" + ChecklistServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ChecklistServiceGetChecklistProcedure:
			getChecklist.ServeHTTP(w, r)
		case ChecklistServiceSaveChecklistProcedure:
			saveChecklist.ServeHTTP(w, r)
		case ChecklistServiceSaveBudgetProcedure:
			saveBudget.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
