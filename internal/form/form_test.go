package form_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/form"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

func fillValid(f *form.Form) {
	f.Change(validation.FieldFirstName, "John")
	f.Change(validation.FieldLastName, "Doe")
	f.Change(validation.FieldEmail, "john.doe@gmail.com")
	f.Change(validation.FieldPassword, "Secur3?pass")
	f.Change(validation.FieldConfirmPassword, "Secur3?pass")
	f.Change(validation.FieldDateOfBirth, "1990-04-23")
	f.SetTerms(true)
}

func TestForm_SubmitEmptyFormFailsWithoutCallingRegistrar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registrar := form.NewMockRegistrar(ctrl)
	// No Register expectation: validation must block the call.

	f := form.New(testRules(validation.FullVariant), registrar, time.Minute)
	defer f.Close()

	state, errs := f.Submit(context.Background())

	assert.Equal(t, form.StateFailure, state)
	for _, field := range validation.FullVariant.Fields() {
		assert.Contains(t, errs, field)
	}

	snap := f.Snapshot()
	assert.False(t, snap.Submitting)
	assert.Len(t, snap.VisibleErrors(), len(validation.FullVariant.Fields()))
}

func TestForm_SubmitSuccessThenAutoReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registrar := form.NewMockRegistrar(ctrl)
	registrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, []models.FieldError, error) {
			assert.Equal(t, "john.doe@gmail.com", req.Email)
			assert.Equal(t, "John", req.FirstName)
			return &models.PublicUser{Email: req.Email}, nil, nil
		})

	f := form.New(testRules(validation.FullVariant), registrar, 20*time.Millisecond)
	defer f.Close()
	fillValid(f)

	state, errs := f.Submit(context.Background())

	assert.Equal(t, form.StateSuccess, state)
	assert.Empty(t, errs)

	// The display delay elapses and the form clears back to Idle.
	assert.Eventually(t, func() bool {
		snap := f.Snapshot()
		return snap.State == form.StateIdle && len(snap.Values) == 0 && len(snap.Touched) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestForm_ServerFieldErrorsPopulateExactFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registrar := form.NewMockRegistrar(ctrl)
	registrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, []models.FieldError{
			{Field: validation.FieldEmail, Message: validation.MsgEmailTaken},
		}, nil)

	f := form.New(testRules(validation.FullVariant), registrar, time.Minute)
	defer f.Close()
	fillValid(f)
	f.Change(validation.FieldEmail, "already@gmail.com")

	state, errs := f.Submit(context.Background())

	assert.Equal(t, form.StateFailure, state)
	assert.Equal(t, map[string]string{validation.FieldEmail: validation.MsgEmailTaken}, errs)
}

func TestForm_TransportFailureSetsGenericError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registrar := form.NewMockRegistrar(ctrl)
	registrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("connection refused"))

	f := form.New(testRules(validation.FullVariant), registrar, time.Minute)
	defer f.Close()
	fillValid(f)

	state, errs := f.Submit(context.Background())

	assert.Equal(t, form.StateFailure, state)
	assert.Equal(t, form.MsgSubmissionFailed, errs[form.FieldForm])
	assert.False(t, f.Snapshot().Submitting)
}

func TestForm_ConcurrentSubmitBlocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	entered := make(chan struct{})

	registrar := form.NewMockRegistrar(ctrl)
	registrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, []models.FieldError, error) {
			close(entered)
			<-release
			return &models.PublicUser{}, nil, nil
		}).
		Times(1)

	f := form.New(testRules(validation.FullVariant), registrar, time.Minute)
	defer f.Close()
	fillValid(f)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Submit(context.Background())
	}()

	<-entered
	// The call is in flight: this submit must be a no-op in Warning state.
	state, _ := f.Submit(context.Background())
	assert.Equal(t, form.StateWarning, state)

	close(release)
	<-done
	assert.Equal(t, form.StateSuccess, f.Snapshot().State)
}

func TestForm_EditsDuringFlightLandInSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})
	entered := make(chan struct{})

	registrar := form.NewMockRegistrar(ctrl)
	registrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, []models.FieldError, error) {
			close(entered)
			<-release
			return &models.PublicUser{}, nil, nil
		})

	f := form.New(testRules(validation.FullVariant), registrar, time.Minute)
	defer f.Close()
	fillValid(f)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Submit(context.Background())
	}()

	<-entered
	f.Change(validation.FieldFirstName, "Johnny")
	assert.Equal(t, "Johnny", f.Snapshot().Values[validation.FieldFirstName])

	close(release)
	<-done
}

func TestForm_ManualResetCancelsTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registrar := form.NewMockRegistrar(ctrl)
	registrar.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(&models.PublicUser{}, nil, nil)

	f := form.New(testRules(validation.FullVariant), registrar, time.Hour)
	defer f.Close()
	fillValid(f)

	state, _ := f.Submit(context.Background())
	assert.Equal(t, form.StateSuccess, state)

	f.Reset()
	assert.Equal(t, form.StateIdle, f.Snapshot().State)
	assert.Empty(t, f.Snapshot().Values)
}
