package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// WithBearerToken attaches "Authorization: Bearer <token>" to every call.
// token is read per call; an empty token sends no header.
func WithBearerToken(token func() string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tok := token(); tok != "" {
				req.Header().Set("Authorization", "Bearer "+tok)
			}
			return next(ctx, req)
		}
	}))
}

// AuthClient calls the auth service.
type AuthClient struct {
	signUp      *connect.Client[SignUpRequest, SignUpResponse]
	signIn      *connect.Client[SignInRequest, SignInResponse]
	signOut     *connect.Client[SignOutRequest, SignOutResponse]
	currentUser *connect.Client[CurrentUserRequest, CurrentUserResponse]
}

// NewAuthClient creates an auth service client for the server at baseURL.
func NewAuthClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &AuthClient{
		signUp:      connect.NewClient[SignUpRequest, SignUpResponse](httpClient, baseURL+AuthServiceSignUpProcedure, opts...),
		signIn:      connect.NewClient[SignInRequest, SignInResponse](httpClient, baseURL+AuthServiceSignInProcedure, opts...),
		signOut:     connect.NewClient[SignOutRequest, SignOutResponse](httpClient, baseURL+AuthServiceSignOutProcedure, opts...),
		currentUser: connect.NewClient[CurrentUserRequest, CurrentUserResponse](httpClient, baseURL+AuthServiceCurrentUserProcedure, opts...),
	}
}

func (c *AuthClient) SignUp(ctx context.Context, req *SignUpRequest) (*SignUpResponse, error) {
	return call(ctx, c.signUp, req)
}

func (c *AuthClient) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	return call(ctx, c.signIn, req)
}

func (c *AuthClient) SignOut(ctx context.Context, req *SignOutRequest) (*SignOutResponse, error) {
	return call(ctx, c.signOut, req)
}

func (c *AuthClient) CurrentUser(ctx context.Context, req *CurrentUserRequest) (*CurrentUserResponse, error) {
	return call(ctx, c.currentUser, req)
}

// ChecklistClient calls the checklist service.
type ChecklistClient struct {
	getChecklist  *connect.Client[GetChecklistRequest, GetChecklistResponse]
	saveChecklist *connect.Client[SaveChecklistRequest, SaveChecklistResponse]
	saveBudget    *connect.Client[SaveBudgetRequest, SaveBudgetResponse]
}

// NewChecklistClient creates a checklist service client for the server at baseURL.
func NewChecklistClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ChecklistClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ChecklistClient{
		getChecklist:  connect.NewClient[GetChecklistRequest, GetChecklistResponse](httpClient, baseURL+ChecklistServiceGetChecklistProcedure, opts...),
		saveChecklist: connect.NewClient[SaveChecklistRequest, SaveChecklistResponse](httpClient, baseURL+ChecklistServiceSaveChecklistProcedure, opts...),
		saveBudget:    connect.NewClient[SaveBudgetRequest, SaveBudgetResponse](httpClient, baseURL+ChecklistServiceSaveBudgetProcedure, opts...),
	}
}

func (c *ChecklistClient) GetChecklist(ctx context.Context, req *GetChecklistRequest) (*GetChecklistResponse, error) {
	return call(ctx, c.getChecklist, req)
}

func (c *ChecklistClient) SaveChecklist(ctx context.Context, req *SaveChecklistRequest) (*SaveChecklistResponse, error) {
	return call(ctx, c.saveChecklist, req)
}

func (c *ChecklistClient) SaveBudget(ctx context.Context, req *SaveBudgetRequest) (*SaveBudgetResponse, error) {
	return call(ctx, c.saveBudget, req)
}

func call[Req, Res any](ctx context.Context, client *connect.Client[Req, Res], req *Req) (*Res, error) {
	resp, err := client.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
