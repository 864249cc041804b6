package service

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
)

func newContactFixture(t *testing.T, withRedis bool) (ContactService, repository.ContactRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:contact-%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ContactSubmission{}))

	var client *redis.Client
	if withRedis {
		server, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(server.Close)
		client = redis.NewClient(&redis.Options{Addr: server.Addr()})
	}

	contacts := repository.NewContactRepository(db)
	svc := NewContactService(contacts, client, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	return svc, contacts
}

func validContact() dto.ContactRequest {
	return dto.ContactRequest{
		Name:    "Alice Example",
		Email:   "alice@example.com",
		Subject: "Research collaboration",
		Message: "I would like to discuss a joint project.",
	}
}

func TestContactSubmitStoresSubmission(t *testing.T) {
	svc, contacts := newContactFixture(t, false)

	result, err := svc.Submit(context.Background(), validContact())
	require.NoError(t, err)
	require.NotEmpty(t, result.ReferenceID)
	require.Equal(t, models.ContactStatusUnread, result.Status)

	stored, total, err := contacts.List(context.Background(), repository.ContactFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, result.ReferenceID, stored[0].ReferenceID)
	require.NotEmpty(t, stored[0].Checksum)
}

func TestContactSubmitHoneypot(t *testing.T) {
	svc, contacts := newContactFixture(t, false)

	req := validContact()
	req.Honeypot = "filled by bot"

	_, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrContactSpam)

	_, total, err := contacts.List(context.Background(), repository.ContactFilter{})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestContactSubmitSanitizesMarkup(t *testing.T) {
	svc, contacts := newContactFixture(t, false)

	req := validContact()
	req.Message = "Hello <script>alert('x')</script> there, looking forward."

	_, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	stored, _, err := contacts.List(context.Background(), repository.ContactFilter{})
	require.NoError(t, err)
	require.NotContains(t, stored[0].Message, "<script>")
}

func TestContactSubmitDeduplicates(t *testing.T) {
	svc, contacts := newContactFixture(t, true)

	_, err := svc.Submit(context.Background(), validContact())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), validContact())
	require.ErrorIs(t, err, ErrContactDuplicate)

	_, total, err := contacts.List(context.Background(), repository.ContactFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestContactSubmitValidation(t *testing.T) {
	svc, _ := newContactFixture(t, false)

	req := validContact()
	req.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
}
