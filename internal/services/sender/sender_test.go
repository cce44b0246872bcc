package sender_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avshapoval/shop-backend/internal/lib/smtp"
	"github.com/avshapoval/shop-backend/internal/models"
	senderservice "github.com/avshapoval/shop-backend/internal/services/sender"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

// bufferWriter собирает тело письма для проверки содержимого
type bufferWriter struct {
	strings.Builder
}

func (w *bufferWriter) Close() error { return nil }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_SendResetEmail(t *testing.T) {
	t.Run("success - letter contains reset link", func(t *testing.T) {
		body, err := json.Marshal(models.ResetEmail{
			Email: "test@example.com",
			Link:  "http://localhost:7777/reset?resetToken=a1b2c3",
		})
		require.NoError(t, err)

		transport := new(MockTransport)
		client := new(MockSMTPClient)
		writer := &bufferWriter{}

		transport.On("GetSMTPUser").Return("sender@example.com")
		transport.On("Connect").Return(client, nil).Once()
		client.On("Mail", "sender@example.com").Return(nil).Once()
		client.On("Rcpt", "test@example.com").Return(nil).Once()
		client.On("Data").Return(writer, nil).Once()
		client.On("Quit").Return(nil).Once()

		svc := senderservice.New(transport, newNoopLogger())
		err = svc.SendResetEmail(body)
		require.NoError(t, err)

		assert.Contains(t, writer.String(), "http://localhost:7777/reset?resetToken=a1b2c3")
		assert.Contains(t, writer.String(), "To: test@example.com")

		transport.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("malformed message", func(t *testing.T) {
		transport := new(MockTransport)
		svc := senderservice.New(transport, newNoopLogger())

		err := svc.SendResetEmail([]byte("{bad json"))
		assert.Error(t, err)
		transport.AssertNotCalled(t, "Connect")
	})

	t.Run("connect failure is returned for requeue", func(t *testing.T) {
		body, err := json.Marshal(models.ResetEmail{
			Email: "test@example.com",
			Link:  "http://localhost:7777/reset?resetToken=a1b2c3",
		})
		require.NoError(t, err)

		transport := new(MockTransport)
		transport.On("Connect").Return(nil, errors.New("smtp down")).Once()

		svc := senderservice.New(transport, newNoopLogger())
		err = svc.SendResetEmail(body)
		assert.Error(t, err)

		transport.AssertExpectations(t)
	})
}
