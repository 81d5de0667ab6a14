package services

import (
	"context"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/testutil"
)

// recordingNotifier captures published notification kinds.
type recordingNotifier struct {
	kinds []string
}

func (n *recordingNotifier) Notify(_ context.Context, kind, _, _ string) error {
	n.kinds = append(n.kinds, kind)
	return nil
}

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifier := &recordingNotifier{}
		svc := NewUserService(db, notifier)

		user, err := svc.CreateUser(context.Background(), "Alice", "Alice@Example.com", "supersecret")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected non-empty user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Password == "supersecret" {
			t.Error("password should be stored hashed")
		}
		if !user.IsActive {
			t.Error("new users should be active")
		}
		if len(notifier.kinds) != 1 || notifier.kinds[0] != string(amqp.NotificationUserCreated) {
			t.Errorf("expected one %q notification, got %v", amqp.NotificationUserCreated, notifier.kinds)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())

		_, err := svc.CreateUser(context.Background(), "Alice", "alice@example.com", "supersecret")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser(context.Background(), "Other Alice", "ALICE@example.com", "othersecret")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())

		_, err := svc.CreateUser(context.Background(), "", "alice@example.com", "supersecret")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())
		created := testutil.CreateTestUser(t, db)

		user, err := svc.AttemptLogin(created.Email, "password123")
		testutil.AssertNoError(t, err)

		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
		if user.LastLoginAt == nil {
			t.Error("expected last login time to be recorded")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())
		created := testutil.CreateTestUser(t, db)

		_, err := svc.AttemptLogin(created.Email, "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())

		_, err := svc.AttemptLogin("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("blocked_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())
		created := testutil.CreateTestUser(t, db)

		_, err := svc.SetBlocked(created.ID, true)
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin(created.Email, "password123")
		testutil.AssertAppError(t, err, "USER_BLOCKED")
	})

	t.Run("unblocked_user_can_login_again", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())
		created := testutil.CreateTestUser(t, db)

		_, err := svc.SetBlocked(created.ID, true)
		testutil.AssertNoError(t, err)
		_, err = svc.SetBlocked(created.ID, false)
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin(created.Email, "password123")
		testutil.AssertNoError(t, err)
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifier := &recordingNotifier{}
		svc := NewUserService(db, notifier)
		created := testutil.CreateTestUser(t, db)

		_, err := svc.UpdatePassword(context.Background(), created.Email, "newsecret456")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin(created.Email, "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

		_, err = svc.AttemptLogin(created.Email, "newsecret456")
		testutil.AssertNoError(t, err)

		if len(notifier.kinds) != 1 || notifier.kinds[0] != string(amqp.NotificationPasswordChanged) {
			t.Errorf("expected one %q notification, got %v", amqp.NotificationPasswordChanged, notifier.kinds)
		}
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewNoopNotifier())

		_, err := svc.UpdatePassword(context.Background(), "nobody@example.com", "newsecret456")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestDeleteUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db, NewNoopNotifier())
	created := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.DeleteUser(created.ID))

	_, err := svc.GetUserByID(created.ID)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
