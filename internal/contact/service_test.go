package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/httpapi"
)

func TestCreate_StartsUnread(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	message, err := svc.Create(context.Background(), CreateInput{
		Name: "Visitor", Email: "visitor@example.com", Message: "Hello",
	})
	require.NoError(t, err)
	assert.False(t, message.Read)
	assert.Nil(t, message.Subject)
}

func TestSetRead_RoundTrip(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	_, err := svc.Create(context.Background(), CreateInput{
		Name: "Visitor", Email: "visitor@example.com", Message: "Hello",
	})
	require.NoError(t, err)

	message, err := svc.SetRead(context.Background(), "1", true)
	require.NoError(t, err)
	assert.True(t, message.Read)

	message, err = svc.SetRead(context.Background(), "1", false)
	require.NoError(t, err)
	assert.False(t, message.Read)
}

func TestList_ReadFilter(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			Name: "Visitor", Email: "visitor@example.com", Message: "Hello",
		})
		require.NoError(t, err)
	}
	_, err := svc.SetRead(context.Background(), "2", true)
	require.NoError(t, err)

	unread := false
	total, list, err := svc.List(context.Background(), "", &unread, httpapi.Page{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)
}
