package subscription_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/core/email"
	"github.com/dmitrymomot/newsletter/core/subscriber"
	"github.com/dmitrymomot/newsletter/core/subscription"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateSubscriber(ctx context.Context, sub subscriber.Subscriber, token string) error {
	args := m.Called(ctx, sub, token)
	return args.Error(0)
}

func (m *mockStore) ConfirmSubscriber(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func TestServiceSubscribe(t *testing.T) {
	t.Parallel()

	const baseURL = "https://newsletter.example.com"

	t.Run("stores pending subscriber and mails the confirmation link", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}

		var issuedToken string
		store.On("CreateSubscriber", mock.Anything, mock.MatchedBy(func(sub subscriber.Subscriber) bool {
			return sub.Name.String() == "le guin" && sub.Email.String() == "ursula@example.com"
		}), mock.MatchedBy(func(token string) bool {
			return len(token) == subscription.TokenLength
		})).Run(func(args mock.Arguments) {
			issuedToken = args.String(2)
		}).Return(nil)

		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "ursula@example.com" && p.Subject == "Welcome!"
		})).Return(nil)

		svc, err := subscription.NewService(store, sender, baseURL)
		require.NoError(t, err)

		require.NoError(t, svc.Subscribe(context.Background(), "le guin", "ursula@example.com"))

		store.AssertExpectations(t)
		sender.AssertExpectations(t)

		// Both bodies carry the link with the exact token the store received.
		params := sender.Calls[0].Arguments.Get(1).(email.SendEmailParams)
		link := baseURL + "/subscriptions/confirm?token=" + issuedToken
		assert.Contains(t, params.BodyHTML, link)
		assert.Contains(t, params.BodyText, link)
	})

	t.Run("invalid name never reaches the store", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}

		svc, err := subscription.NewService(store, sender, baseURL)
		require.NoError(t, err)

		err = svc.Subscribe(context.Background(), "", "ursula@example.com")
		assert.ErrorIs(t, err, subscriber.ErrEmptyName)
		store.AssertNotCalled(t, "CreateSubscriber", mock.Anything, mock.Anything, mock.Anything)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("invalid email never reaches the store", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}

		svc, err := subscription.NewService(store, sender, baseURL)
		require.NoError(t, err)

		err = svc.Subscribe(context.Background(), "le guin", "not-an-email")
		assert.ErrorIs(t, err, subscriber.ErrInvalidEmail)
		store.AssertNotCalled(t, "CreateSubscriber", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure suppresses the email", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}

		storeErr := errors.New("boom")
		store.On("CreateSubscriber", mock.Anything, mock.Anything, mock.Anything).Return(storeErr)

		svc, err := subscription.NewService(store, sender, baseURL)
		require.NoError(t, err)

		err = svc.Subscribe(context.Background(), "le guin", "ursula@example.com")
		assert.ErrorIs(t, err, storeErr)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("send failure surfaces as confirmation email error", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sender := &mockSender{}

		store.On("CreateSubscriber", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		svc, err := subscription.NewService(store, sender, baseURL)
		require.NoError(t, err)

		err = svc.Subscribe(context.Background(), "le guin", "ursula@example.com")
		assert.ErrorIs(t, err, subscription.ErrConfirmationEmail)
	})
}

func TestServiceConfirm(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	sender := &mockSender{}

	store.On("ConfirmSubscriber", mock.Anything, "sometoken").Return(nil)

	svc, err := subscription.NewService(store, sender, "https://newsletter.example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), "sometoken"))
	store.AssertExpectations(t)
}
