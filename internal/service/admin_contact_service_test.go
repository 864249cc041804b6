package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ManaClgLevelUp/revathi-duba/internal/dto"
	"github.com/ManaClgLevelUp/revathi-duba/internal/models"
)

func TestAdminContactListAndStatusFlow(t *testing.T) {
	contactSvc, contacts := newContactFixture(t, false)
	svc := NewAdminContactService(contacts, testLogger())

	first := validContact()
	_, err := contactSvc.Submit(context.Background(), first)
	require.NoError(t, err)

	second := validContact()
	second.Email = "bob@example.com"
	second.Subject = "Invited talk"
	_, err = contactSvc.Submit(context.Background(), second)
	require.NoError(t, err)

	list, err := svc.List(context.Background(), dto.AdminContactListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	require.Equal(t, int64(2), list.Pagination.TotalItems)

	unreadOnly, err := svc.List(context.Background(), dto.AdminContactListRequest{Status: models.ContactStatusUnread})
	require.NoError(t, err)
	require.Len(t, unreadOnly.Items, 2)

	target := list.Items[0]
	require.NoError(t, svc.UpdateStatus(context.Background(), target.ID, models.ContactStatusRead))

	updated, err := svc.Get(context.Background(), target.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContactStatusRead, updated.Status)

	searched, err := svc.List(context.Background(), dto.AdminContactListRequest{Search: "invited"})
	require.NoError(t, err)
	require.Len(t, searched.Items, 1)

	require.NoError(t, svc.Delete(context.Background(), target.ID))
	_, err = svc.Get(context.Background(), target.ID)
	require.ErrorIs(t, err, ErrContactNotFound)
}

func TestAdminContactMissingSubmission(t *testing.T) {
	_, contacts := newContactFixture(t, false)
	svc := NewAdminContactService(contacts, testLogger())

	require.ErrorIs(t, svc.UpdateStatus(context.Background(), 404, models.ContactStatusRead), ErrContactNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), 404), ErrContactNotFound)
}
