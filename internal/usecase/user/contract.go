package user

import (
	"context"
	"time"

	"github.com/kailas-cloud/wareflow/internal/domain/record"
	domuser "github.com/kailas-cloud/wareflow/internal/domain/user"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// Listing is the user screen workspace the service builds on.
type Listing = listing.Service[domuser.User]

// Clock returns the current time. Replaced in tests.
type Clock func() time.Time

// ActivityLog returns the profile history of a user.
type ActivityLog interface {
	Activity(ctx context.Context, id record.ID) (domuser.Activity, error)
}
