package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"productadmin/internal/clients"
	"productadmin/internal/domain"
	"productadmin/internal/validation"
)

const (
	// A 200 without a token is a malformed success, distinct from a rejection.
	MsgUnknownServerError = "Unknown server error. Please try again."
	// Last-resort message when the failure carries no usable text.
	MsgLoginRetry = "Login failed. Please try again."
)

// Navigator receives the signal to move to the product screen after a
// successful login. The view layer satisfies it.
type Navigator interface {
	NavigateToProducts()
}

// SessionWriter persists the established session. *session.Session
// satisfies it.
type SessionWriter interface {
	Establish(token string, userID int) error
}

// FieldErrors carries both login field results. Unlike product validation,
// a passing field is present as an explicit empty string so the form can
// clear its previous message.
type FieldErrors struct {
	Username string
	Password string
}

func (f FieldErrors) Any() bool {
	return f.Username != "" || f.Password != ""
}

// LoginFlow sequences one login attempt: validate both fields, call the
// authentication endpoint, persist the token and signal navigation.
// Validation failures and remote failures take distinct paths; the loading
// flag is cleared on every exit.
type LoginFlow struct {
	api     clients.ProductAPI
	session SessionWriter
	nav     Navigator
	log     *logrus.Logger

	mu          sync.Mutex
	loading     bool
	fieldErrors FieldErrors
	apiError    string
}

func NewLoginFlow(api clients.ProductAPI, session SessionWriter, nav Navigator, logger *logrus.Logger) *LoginFlow {
	return &LoginFlow{
		api:     api,
		session: session,
		nav:     nav,
		log:     logger,
	}
}

// Submit runs one login attempt. Both validators run independently; if
// either fails, both results are recorded (the passing one as an empty
// string) and no remote call is made. While a previous attempt is still in
// flight, new submissions are rejected rather than trusted to a disabled
// button.
func (f *LoginFlow) Submit(ctx context.Context, username, password string) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		f.log.Warn("Use Case: Submit ignored, login already in flight")
		return
	}
	f.fieldErrors = FieldErrors{}
	f.apiError = ""

	usernameErr := validation.ValidateUsername(username)
	passwordErr := validation.ValidatePassword(password)
	if usernameErr != "" || passwordErr != "" {
		f.fieldErrors = FieldErrors{Username: usernameErr, Password: passwordErr}
		f.mu.Unlock()
		f.log.Warn("Use Case: Login rejected by field validation, no remote call issued")
		return
	}

	f.loading = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	f.log.Infof("Use Case: Submitting login for user '%s'", username)
	result, err := f.api.Login(ctx, domain.Credentials{Username: username, Password: password})
	if err != nil {
		f.setAPIError(f.failureMessage(err))
		return
	}

	if result.Token == "" {
		f.log.Error("Use Case: Login response carried no token")
		f.setAPIError(MsgUnknownServerError)
		return
	}

	if err := f.session.Establish(result.Token, result.UserID); err != nil {
		f.log.Errorf("Use Case: Failed to persist session: %v", err)
		f.setAPIError(MsgLoginRetry)
		return
	}

	f.log.Infof("Use Case: Login succeeded for user '%s', navigating to products", username)
	f.nav.NavigateToProducts()
}

// failureMessage prefers the server-provided message, then the failure's
// own text, then a generic retry message.
func (f *LoginFlow) failureMessage(err error) string {
	f.log.Warnf("Use Case: Login failed: %v", err)
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgLoginRetry
}

func (f *LoginFlow) setAPIError(msg string) {
	f.mu.Lock()
	f.apiError = msg
	f.mu.Unlock()
}

// ClearAPIError dismisses the login error banner.
func (f *LoginFlow) ClearAPIError() {
	f.mu.Lock()
	f.apiError = ""
	f.mu.Unlock()
}

func (f *LoginFlow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *LoginFlow) FieldErrors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors
}

func (f *LoginFlow) APIError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apiError
}
