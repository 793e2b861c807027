package restaurant

import (
	"context"
	"testing"

	domain "github.com/example/marketplace-services/domain/restaurant"
	"github.com/example/marketplace-services/domain/user"
	"github.com/example/marketplace-services/logging"
	"github.com/example/marketplace-services/modules/userdetails"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher implements userdetails.Fetcher for testing
type stubFetcher struct {
	profiles []user.Profile
	err      error
}

func (s stubFetcher) FetchBulk(_ context.Context, _ []string) ([]user.Profile, error) {
	return s.profiles, s.err
}

func newServiceWithDB(t *testing.T, fetcher userdetails.Fetcher) *Service {
	t.Helper()
	return NewService(NewRepository(setupTestDB(t)), userdetails.NewDecorator(fetcher, logging.Nop()), nil)
}

func TestService_CreateAndListByOwner(t *testing.T) {
	fetcher := stubFetcher{profiles: []user.Profile{user.NewProfile("owner-1", map[string]any{"name": "Olga"})}}
	svc := newServiceWithDB(t, fetcher)
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", domain.CreateInput{
		Name: "Bistro", City: "Nice", Address: "2 Rue", PhoneNumber: "0400",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.RestaurantID)
	assert.Nil(t, created.UserDetails)

	mine, err := svc.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].UserDetails)
	assert.Equal(t, "owner-1", mine[0].UserDetails.UserID)
}

func TestService_CreateRejectsMissingFields(t *testing.T) {
	svc := newServiceWithDB(t, stubFetcher{})

	_, err := svc.Create(context.Background(), "owner-1", domain.CreateInput{Name: "Nameless City"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "phone_number")
}

func TestService_DeleteByNonOwnerIsNotFound(t *testing.T) {
	svc := newServiceWithDB(t, stubFetcher{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-1", domain.CreateInput{
		Name: "Bistro", City: "Nice", Address: "2 Rue", PhoneNumber: "0400",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.RestaurantID, "owner-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, created.RestaurantID, "owner-1"))

	err = svc.Delete(ctx, created.RestaurantID, "owner-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
